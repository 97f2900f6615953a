package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	schemesentity "fund_backend/internal/feature/schemes/domain/entity"
	screenerentity "fund_backend/internal/feature/screener/domain/entity"
)

// missing is printed for figures the provider did not report.
const missing = "N/A"

var (
	detailKeys = []string{"fund_house", "scheme_type", "scheme_category", "scheme_code", "scheme_name", "scheme_start_date"}
	quoteKeys  = []string{"scheme_code", "scheme_name", "last_updated", "nav"}
)

// PrintSchemeReport prints the filled report fields as "key: value" lines.
// Nested values are printed as compact JSON.
func PrintSchemeReport(w io.Writer, r schemesentity.SchemeReport) error {
	type line struct {
		key string
		val any
	}
	var lines []line
	if r.Details != nil {
		lines = append(lines, line{schemesentity.FieldBasicSchemeDetails, r.Details.Document()})
	}
	if r.HistoricalNAV != nil {
		nav := make([]map[string]any, 0, len(r.HistoricalNAV))
		for _, o := range r.HistoricalNAV {
			nav = append(nav, map[string]any{"date": o.Date, "nav": o.Value})
		}
		lines = append(lines, line{schemesentity.FieldHistoricalNAV, nav})
	}
	if r.YearlyReturns != nil {
		yr := make(map[string]float64, len(r.YearlyReturns))
		for y, v := range r.YearlyReturns {
			yr[strconv.Itoa(y)] = v
		}
		lines = append(lines, line{schemesentity.FieldYearlyProfit, yr})
	}
	if r.BalanceUnitsValue != nil {
		lines = append(lines, line{schemesentity.FieldBalanceUnitsValue, r.BalanceUnitsValue.Document()})
	}
	if r.SIP != nil {
		lines = append(lines, line{schemesentity.FieldSIPSummary, r.SIP.Document()})
	}
	if r.AMCProfiles != nil {
		profiles := make([]map[string]any, 0, len(r.AMCProfiles))
		for _, a := range r.AMCProfiles {
			profiles = append(profiles, a.Document())
		}
		lines = append(lines, line{schemesentity.FieldAMCProfiles, profiles})
	}
	if r.Err != nil {
		lines = append(lines, line{schemesentity.FieldError, r.Err.Error()})
	}

	for _, l := range lines {
		s, err := formatValue(l.val)
		if err != nil {
			return fmt.Errorf("format %s: %w", l.key, err)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", l.key, s); err != nil {
			return err
		}
	}
	return nil
}

// PrintKeyValues prints doc[key] for each key in order.
func PrintKeyValues(w io.Writer, doc map[string]any, keys []string) error {
	for _, k := range keys {
		s, err := formatValue(doc[k])
		if err != nil {
			return fmt.Errorf("format %s: %w", k, err)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, s); err != nil {
			return err
		}
	}
	return nil
}

// PrintFundamentals prints the additional data of every ticker.
func PrintFundamentals(w io.Writer, fs []screenerentity.Fundamentals) {
	for _, f := range fs {
		fmt.Fprintf(w, "Data for %s:\n", f.Ticker)
		for _, fl := range f.Fields() {
			s, err := formatValue(fl.Value)
			if err != nil {
				s = fmt.Sprint(fl.Value)
			}
			fmt.Fprintf(w, "  %s: %s\n", fl.Name, s)
		}
		fmt.Fprintln(w)
	}
}

// PrintSpotTable prints the joined spot data as an aligned table, one row per date.
func PrintSpotTable(w io.Writer, tickers []string, rows []screenerentity.SpotRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No spot data.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"Date"}
	for _, t := range tickers {
		for _, c := range screenerentity.BarColumns {
			header = append(header, t+" "+c)
		}
	}
	header = append(header, screenerentity.IndexColumns...)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, r := range rows {
		cells := []string{r.Date.Format("2006-01-02")}
		for _, t := range tickers {
			b, ok := r.Bars[t]
			cells = append(cells, barCells(b, ok)...)
		}
		if r.Index != nil {
			cells = append(cells, barCells(*r.Index, true)...)
		} else {
			cells = append(cells, barCells(screenerentity.Bar{}, false)...)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func barCells(b screenerentity.Bar, ok bool) []string {
	out := make([]string, 0, len(screenerentity.BarColumns))
	if !ok {
		for range screenerentity.BarColumns {
			out = append(out, missing)
		}
		return out
	}
	for _, v := range b.Values() {
		switch x := v.(type) {
		case nil:
			out = append(out, missing)
		case float64:
			out = append(out, strconv.FormatFloat(x, 'f', 2, 64))
		default:
			out = append(out, fmt.Sprint(x))
		}
	}
	return out
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return missing, nil
	case string:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return missing, nil
		}
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int, int64:
		return fmt.Sprint(x), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
