package amfi

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"fund_backend/internal/feature/schemes/domain/entity"
	"fund_backend/internal/feature/schemes/usecase"
)

// navFields is the column count of a scheme row:
// code;ISIN payout/growth;ISIN reinvestment;name;NAV;date
const navFields = 6

// AMFIProvider はAMFIのNAV一覧から運用会社ごとの概要を作るAMCProvider実装です。
type AMFIProvider struct {
	cfg    Config
	client *http.Client
}

var _ usecase.AMCProvider = (*AMFIProvider)(nil)

// NewAMFIProvider creates a provider with the given configuration and HTTP client.
func NewAMFIProvider(cfg Config, client *http.Client) *AMFIProvider {
	return &AMFIProvider{cfg: cfg, client: client}
}

// GetAMCProfiles downloads the NAV list and summarises it per AMC, sorted by name.
func (p *AMFIProvider) GetAMCProfiles(ctx context.Context) ([]entity.AMCProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.BaseURL+NAVAllPath, nil)
	if err != nil {
		return nil, err
	}
	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("amfi http %d", res.StatusCode)
	}
	return ParseNAVAll(res.Body)
}

// ParseNAVAll reads the NAV list. Section lines name either a scheme category
// ("Open Ended Schemes(Equity Scheme - Large Cap Fund)") or the AMC whose
// scheme rows follow.
func ParseNAVAll(r io.Reader) ([]entity.AMCProfile, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	byName := map[string]*entity.AMCProfile{}
	seenCat := map[string]map[string]bool{}
	var amc, category string

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse amfi nav list: %w", err)
		}

		if len(rec) == 1 {
			line := strings.TrimSpace(rec[0])
			if line == "" {
				continue
			}
			if c, ok := categoryOf(line); ok {
				category = c
			} else {
				amc = line
			}
			continue
		}
		if len(rec) < navFields || strings.TrimSpace(rec[0]) == "Scheme Code" || amc == "" {
			continue
		}

		prof, ok := byName[amc]
		if !ok {
			prof = &entity.AMCProfile{Name: amc}
			byName[amc] = prof
			seenCat[amc] = map[string]bool{}
		}
		prof.Schemes++
		if category != "" && !seenCat[amc][category] {
			seenCat[amc][category] = true
			prof.Categories = append(prof.Categories, category)
		}
	}

	out := make([]entity.AMCProfile, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// categoryOf returns the text inside the parentheses of a category line.
func categoryOf(line string) (string, bool) {
	open := strings.Index(line, "Schemes(")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return "", false
	}
	return strings.TrimSpace(line[open+len("Schemes(") : len(line)-1]), true
}
