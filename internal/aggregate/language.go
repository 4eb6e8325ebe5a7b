package aggregate

import (
	"sort"

	"github.com/open-sspm/vulndash/internal/findings"
)

type LanguageRow struct {
	Language string         `json:"language"`
	Counts   SeverityCounts `json:"counts"`
}

// LanguageBreakdown lists per-language severity counts, smallest total first. The
// empty language is kept as its own bucket.
type LanguageBreakdown struct {
	Rows []LanguageRow `json:"rows"`
}

func (b LanguageBreakdown) Empty() bool {
	return len(b.Rows) == 0
}

func LanguageSeverity(records []findings.Record) LanguageBreakdown {
	c := newCounter()
	counts := map[string]*SeverityCounts{}
	for _, r := range records {
		c.add(r.Language)
		sc, ok := counts[r.Language]
		if !ok {
			sc = &SeverityCounts{}
			counts[r.Language] = sc
		}
		sc.add(r.Severity)
	}
	keys := c.byCount(false)
	out := LanguageBreakdown{Rows: make([]LanguageRow, 0, len(keys))}
	for _, k := range keys {
		out.Rows = append(out.Rows, LanguageRow{Language: k, Counts: *counts[k]})
	}
	return out
}

type LanguageCVSS struct {
	Language string       `json:"language"`
	Scores   []float64    `json:"scores"`
	Stats    Distribution `json:"stats"`
}

// CVSSDistribution holds per-language CVSS summaries ordered by ascending median.
type CVSSDistribution struct {
	Languages []LanguageCVSS `json:"languages"`
}

func (d CVSSDistribution) Empty() bool {
	return len(d.Languages) == 0
}

// CVSSByLanguage summarizes CVSS scores of vulnerability records with a positive
// score. Languages are ordered by the upper median of their scores; ties keep
// first-appearance order.
func CVSSByLanguage(records []findings.Record) CVSSDistribution {
	c := newCounter()
	scores := map[string][]float64{}
	for _, r := range records {
		if !r.IsVuln() || r.CVSS <= 0 {
			continue
		}
		c.add(r.Language)
		scores[r.Language] = append(scores[r.Language], r.CVSS)
	}
	out := CVSSDistribution{Languages: make([]LanguageCVSS, 0, len(c.order))}
	keys := make(map[string]float64, len(c.order))
	for _, lang := range c.order {
		sorted := append([]float64(nil), scores[lang]...)
		sort.Float64s(sorted)
		keys[lang] = upperMedian(sorted)
		out.Languages = append(out.Languages, LanguageCVSS{
			Language: lang,
			Scores:   scores[lang],
			Stats:    Describe(scores[lang]),
		})
	}
	sort.SliceStable(out.Languages, func(i, j int) bool {
		return keys[out.Languages[i].Language] < keys[out.Languages[j].Language]
	})
	return out
}
