package aggregate

import "github.com/open-sspm/vulndash/internal/findings"

// TopCWELimit is the number of weakness classes kept.
const TopCWELimit = 10

type CWERow struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Total  int            `json:"total"`
	Counts SeverityCounts `json:"counts"`
}

// CWERanking holds the most frequent weakness classes, smallest first for a
// horizontal bar layout.
type CWERanking struct {
	Rows []CWERow `json:"rows"`
}

func (r CWERanking) Empty() bool {
	return len(r.Rows) == 0
}

// TopCWE ranks vulnerability records by CWE id, keeps the ten most frequent and
// returns them in ascending count order. Each label uses the first non-empty title
// seen for the id.
func TopCWE(records []findings.Record) CWERanking {
	vulns := filterRecords(records, func(r findings.Record) bool {
		return r.IsVuln() && r.CWE != ""
	})
	if len(vulns) == 0 {
		return CWERanking{}
	}

	c := newCounter()
	for _, r := range vulns {
		c.add(r.CWE)
	}
	top := c.byCount(true)
	if len(top) > TopCWELimit {
		top = top[:TopCWELimit]
	}

	rows := make(map[string]*CWERow, len(top))
	for _, id := range top {
		rows[id] = &CWERow{ID: id, Total: c.counts[id]}
	}
	for _, r := range vulns {
		row, ok := rows[r.CWE]
		if !ok {
			continue
		}
		if row.Label == "" && r.Title != "" {
			row.Label = r.CWE + " — " + r.Title
		}
		row.Counts.add(r.Severity)
	}

	asc := newCounter()
	for _, id := range top {
		asc.order = append(asc.order, id)
		asc.counts[id] = c.counts[id]
	}
	out := CWERanking{Rows: make([]CWERow, 0, len(top))}
	for _, id := range asc.byCount(false) {
		row := rows[id]
		if row.Label == "" {
			row.Label = id
		}
		out.Rows = append(out.Rows, *row)
	}
	return out
}
