// Package usecase implements the year-wise return computation over a NAV or price series.
package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fund_backend/internal/feature/returns/domain/entity"
)

// DateLayout is the only accepted date format of a series key (DD-MM-YYYY).
const DateLayout = "02-01-2006"

var (
	// ErrInvalidValue is returned when an observation value cannot be coerced to a finite number.
	ErrInvalidValue = errors.New("value is not a finite number")

	// ErrInsufficientData is reported for a year with fewer than two observations.
	ErrInsufficientData = errors.New("at least two observations are required")

	// ErrZeroBaseValue is reported for a year whose first value is zero.
	ErrZeroBaseValue = errors.New("first value of the year is zero")

	// ErrNonFiniteReturn is reported for a year whose return overflows float64.
	ErrNonFiniteReturn = errors.New("return is not a finite number")
)

type options struct {
	chronological bool
	logger        *slog.Logger
}

// Option configures ComputeYearlyReturns.
type Option func(*options)

// WithChronologicalOrder sorts each year's observations by date before
// taking the first and last value. Without it the series order is used as is.
func WithChronologicalOrder() Option {
	return func(o *options) { o.chronological = true }
}

// WithLogger sets the logger that receives the diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type point struct {
	date  time.Time
	value float64
}

// ComputeYearlyReturns groups series by calendar year and returns
// (last - first) / first * 100 for every year with at least two valid observations.
//
// First and last are taken in series order unless WithChronologicalOrder is given.
// Malformed entries and unusable years never fail the call: they are logged,
// reported as diagnostics and left out of the result.
func ComputeYearlyReturns(series entity.Series, opts ...Option) (entity.YearlyReturns, []entity.Diagnostic) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var diags []entity.Diagnostic
	buckets := make(map[int][]point)
	var years []int // order of first appearance

	for _, obs := range series {
		d, err := time.Parse(DateLayout, obs.Date)
		if err != nil {
			o.logger.Error("invalid date format", "date", obs.Date, "error", err)
			diags = append(diags, entity.Diagnostic{Kind: entity.DiagnosticInvalidDate, Date: obs.Date, Err: err})
			continue
		}
		v, err := ToFloat(obs.Value)
		if err != nil {
			o.logger.Error("invalid value", "date", obs.Date, "value", obs.Value, "error", err)
			diags = append(diags, entity.Diagnostic{Kind: entity.DiagnosticInvalidValue, Date: obs.Date, Err: err})
			continue
		}

		y := d.Year()
		if _, ok := buckets[y]; !ok {
			years = append(years, y)
		}
		buckets[y] = append(buckets[y], point{date: d, value: v})
	}

	out := make(entity.YearlyReturns, len(buckets))
	for _, y := range years {
		pts := buckets[y]
		if len(pts) < 2 {
			o.logger.Warn("insufficient data for year", "year", y, "observations", len(pts))
			diags = append(diags, entity.Diagnostic{Kind: entity.DiagnosticInsufficientData, Year: y, Err: ErrInsufficientData})
			continue
		}
		if o.chronological {
			sort.SliceStable(pts, func(i, j int) bool { return pts[i].date.Before(pts[j].date) })
		}

		first, last := pts[0].value, pts[len(pts)-1].value
		if first == 0 {
			o.logger.Warn("cannot compute return from a zero base value", "year", y)
			diags = append(diags, entity.Diagnostic{Kind: entity.DiagnosticZeroBaseValue, Year: y, Err: ErrZeroBaseValue})
			continue
		}
		r := (last - first) / first * 100
		if math.IsInf(r, 0) || math.IsNaN(r) {
			o.logger.Warn("return is not a finite number", "year", y, "first", first, "last", last)
			diags = append(diags, entity.Diagnostic{Kind: entity.DiagnosticNonFiniteReturn, Year: y, Err: ErrNonFiniteReturn})
			continue
		}
		out[y] = r
	}
	return out, diags
}

// ToFloat coerces a numeric or numeric-string value to a finite float64.
func ToFloat(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case decimal.Decimal:
		f = x.InexactFloat64()
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, x.String())
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, x)
		}
		f = p
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, f)
	}
	return f, nil
}
