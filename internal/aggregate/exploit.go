package aggregate

import (
	"sort"

	"github.com/open-sspm/vulndash/internal/findings"
)

type ExploitRow struct {
	Maturity string         `json:"maturity"`
	Counts   SeverityCounts `json:"counts"`
}

// ExploitBreakdown holds severity counts per exploit maturity, sorted by maturity.
type ExploitBreakdown struct {
	Rows []ExploitRow `json:"rows"`
}

func (b ExploitBreakdown) Empty() bool {
	return len(b.Rows) == 0
}

// ExploitMaturity counts vulnerability records that carry an exploit maturity.
func ExploitMaturity(records []findings.Record) ExploitBreakdown {
	byMaturity := map[string]*SeverityCounts{}
	for _, r := range records {
		if !r.IsVuln() || r.ExploitMaturity == "" {
			continue
		}
		c, ok := byMaturity[r.ExploitMaturity]
		if !ok {
			c = &SeverityCounts{}
			byMaturity[r.ExploitMaturity] = c
		}
		c.add(r.Severity)
	}
	out := ExploitBreakdown{Rows: make([]ExploitRow, 0, len(byMaturity))}
	for m, c := range byMaturity {
		out.Rows = append(out.Rows, ExploitRow{Maturity: m, Counts: *c})
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Maturity < out.Rows[j].Maturity })
	return out
}
