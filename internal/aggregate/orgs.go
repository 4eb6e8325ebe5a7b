package aggregate

import (
	"sort"

	"github.com/open-sspm/vulndash/internal/findings"
)

type OrgTotal struct {
	Org         string `json:"org"`
	Open        int    `json:"open"`
	AboveMedian bool   `json:"above_median"`
}

// OrgTotals lists open-issue counts per organization in ascending count order.
type OrgTotals struct {
	Orgs   []OrgTotal `json:"orgs"`
	Median int        `json:"median"`
}

func (t OrgTotals) Empty() bool {
	return len(t.Orgs) == 0
}

// OpenByOrg counts open records per organization. The median is the element at index
// n/2 of the ascending counts; organizations strictly above it are flagged.
func OpenByOrg(records []findings.Record) OrgTotals {
	c := newCounter()
	for _, r := range openRecords(records) {
		c.add(r.Org)
	}
	keys := c.byCount(false)
	if len(keys) == 0 {
		return OrgTotals{}
	}

	counts := make([]int, len(keys))
	for i, k := range keys {
		counts[i] = c.counts[k]
	}
	med := upperMedian(counts)

	out := OrgTotals{Orgs: make([]OrgTotal, len(keys)), Median: med}
	for i, k := range keys {
		out.Orgs[i] = OrgTotal{Org: k, Open: counts[i], AboveMedian: counts[i] > med}
	}
	return out
}

type OrgFixability struct {
	Org           string  `json:"org"`
	Total         int     `json:"total"`
	Fixable       int     `json:"fixable"`
	FixablePct    float64 `json:"fixable_pct"`
	NotFixablePct float64 `json:"not_fixable_pct"`
}

// Fixability holds the fixable share per organization, sorted by org.
type Fixability struct {
	Orgs []OrgFixability `json:"orgs"`
}

func (f Fixability) Empty() bool {
	return len(f.Orgs) == 0
}

// FixabilityByOrg computes the percentage of fixable records over all records of
// each organization, regardless of status.
func FixabilityByOrg(records []findings.Record) Fixability {
	byOrg := map[string]*OrgFixability{}
	for _, r := range records {
		row, ok := byOrg[r.Org]
		if !ok {
			row = &OrgFixability{Org: r.Org}
			byOrg[r.Org] = row
		}
		row.Total++
		if r.Fixable {
			row.Fixable++
		}
	}
	out := Fixability{Orgs: make([]OrgFixability, 0, len(byOrg))}
	for _, row := range byOrg {
		row.FixablePct = float64(row.Fixable) / float64(row.Total) * 100
		row.NotFixablePct = 100 - row.FixablePct
		out.Orgs = append(out.Orgs, *row)
	}
	sort.Slice(out.Orgs, func(i, j int) bool { return out.Orgs[i].Org < out.Orgs[j].Org })
	return out
}
