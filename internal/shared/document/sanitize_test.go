package document

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type code int

func (c code) String() string { return "code-" + KeyString(int(c)) }

type fund struct {
	Name string
	NAV  float64
}

// assertStringKeys walks v and fails on any map that does not have string keys.
func assertStringKeys(t *testing.T, v any) {
	t.Helper()
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		require.Equal(t, reflect.String, rv.Type().Key().Kind(), "map %T has non-string keys", v)
		iter := rv.MapRange()
		for iter.Next() {
			assertStringKeys(t, iter.Value().Interface())
		}
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < rv.Len(); i++ {
			assertStringKeys(t, rv.Index(i).Interface())
		}
	}
}

func TestSanitize_NestedKeys(t *testing.T) {
	t.Parallel()

	ts := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	in := map[string]any{
		"yearly_profit_percentages": map[int]float64{2020: 10.5, 2021: -3},
		"historical_nav": map[time.Time]any{
			ts: 101.25,
		},
		"nested": []any{
			map[any]any{1: "one", "two": 2, code(7): true},
			"plain",
		},
		"fund": fund{Name: "Alpha", NAV: 12.5},
		"nil":  nil,
	}

	out, err := SanitizeMap(in)
	require.NoError(t, err)

	assertStringKeys(t, out)

	assert.Equal(t, map[string]any{"2020": 10.5, "2021": float64(-3)}, out["yearly_profit_percentages"])
	assert.Equal(t, map[string]any{"2023-04-01 00:00:00": 101.25}, out["historical_nav"])

	nested, ok := out["nested"].([]any)
	require.True(t, ok)
	require.Len(t, nested, 2)
	assert.Equal(t, map[string]any{"1": "one", "two": 2, "code-7": true}, nested[0])
	assert.Equal(t, "plain", nested[1])

	// 値はそのまま
	assert.Equal(t, fund{Name: "Alpha", NAV: 12.5}, out["fund"])
	assert.Nil(t, out["nil"])
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := map[int]any{1: map[int]string{2: "x"}}

	_, err := Sanitize(in)
	require.NoError(t, err)

	assert.Equal(t, map[int]any{1: map[int]string{2: "x"}}, in)
}

func TestSanitize_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"string", "abc", "abc"},
		{"float", 1.5, 1.5},
		{"bytes", []byte("raw"), []byte("raw")},
		{"array", [2]int{1, 2}, []any{1, 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Sanitize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitize_PointerToScalarIsKept(t *testing.T) {
	t.Parallel()

	i := 3
	got, err := Sanitize(&i)
	require.NoError(t, err)
	assert.Same(t, &i, got)
}

func TestSanitize_PointerToMap(t *testing.T) {
	t.Parallel()

	m := map[int]string{5: "five"}

	got, err := Sanitize(&m)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"5": "five"}, got)
}

func TestSanitize_CyclicMap(t *testing.T) {
	t.Parallel()

	m := map[string]any{}
	m["self"] = m

	_, err := Sanitize(m)
	assert.ErrorIs(t, err, ErrCyclicDocument)
}

func TestSanitize_CyclicSlice(t *testing.T) {
	t.Parallel()

	s := []any{nil}
	s[0] = s

	_, err := Sanitize(s)
	assert.ErrorIs(t, err, ErrCyclicDocument)
}

func TestSanitize_SharedSubtreeIsNotACycle(t *testing.T) {
	t.Parallel()

	shared := map[int]int{1: 1}
	in := map[string]any{"a": shared, "b": shared}

	out, err := SanitizeMap(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"1": 1}, out["a"])
	assert.Equal(t, map[string]any{"1": 1}, out["b"])
}

func TestSanitize_SubSliceOfParentIsNotACycle(t *testing.T) {
	t.Parallel()

	s := make([]any, 2)
	s[0] = "x"
	s[1] = s[:1]

	out, err := SanitizeMap(map[string]any{"k": s})
	require.NoError(t, err)
	assert.Equal(t, []any{"x", []any{"x"}}, out["k"])
}

func TestSanitizeMap_RejectsNonMap(t *testing.T) {
	t.Parallel()

	_, err := SanitizeMap([]int{1})
	assert.Error(t, err)
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", KeyString("abc"))
	assert.Equal(t, "42", KeyString(42))
	assert.Equal(t, "2020-01-02 03:04:05", KeyString(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "code-9", KeyString(code(9)))
	assert.Equal(t, "1.5", KeyString(1.5))
}
