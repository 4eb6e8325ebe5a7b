package aggregate

import "github.com/open-sspm/vulndash/internal/findings"

// ScanTypeMatrix counts records per (organization, scan type).
type ScanTypeMatrix struct {
	Orgs      []string `json:"orgs"`
	ScanTypes []string `json:"scan_types"`
	// Counts[i][j] is the count for ScanTypes[i] in Orgs[j].
	Counts [][]int `json:"counts"`
}

func (m ScanTypeMatrix) Empty() bool {
	return len(m.Orgs) == 0
}

func ScanTypeByOrg(records []findings.Record) ScanTypeMatrix {
	if len(records) == 0 {
		return ScanTypeMatrix{}
	}
	orgs := findings.Orgs(records)
	scans := findings.ScanTypes(records)
	orgIdx := indexOf(orgs)
	scanIdx := indexOf(scans)

	counts := make([][]int, len(scans))
	for i := range counts {
		counts[i] = make([]int, len(orgs))
	}
	for _, r := range records {
		counts[scanIdx[r.ScanType]][orgIdx[r.Org]]++
	}
	return ScanTypeMatrix{Orgs: orgs, ScanTypes: scans, Counts: counts}
}

type ScanSeverityRow struct {
	ScanType string             `json:"scan_type"`
	Total    int                `json:"total"`
	Percent  map[string]float64 `json:"percent"`
}

// ScanSeverityMix is the severity percentage split within each scan type.
type ScanSeverityMix struct {
	Rows []ScanSeverityRow `json:"rows"`
}

func (m ScanSeverityMix) Empty() bool {
	return len(m.Rows) == 0
}

// Share returns the percentage of severity s within row i.
func (m ScanSeverityMix) Share(i int, s findings.Severity) float64 {
	return m.Rows[i].Percent[string(s)]
}

// ScanSeverityMixOf computes, per scan type, the percentage of records at each
// severity. A scan type with no records reports 0 for every severity.
func ScanSeverityMixOf(records []findings.Record) ScanSeverityMix {
	scans := findings.ScanTypes(records)
	counts := make(map[string]*SeverityCounts, len(scans))
	totals := make(map[string]int, len(scans))
	for _, s := range scans {
		counts[s] = &SeverityCounts{}
	}
	for _, r := range records {
		counts[r.ScanType].add(r.Severity)
		totals[r.ScanType]++
	}

	out := ScanSeverityMix{Rows: make([]ScanSeverityRow, 0, len(scans))}
	for _, s := range scans {
		row := ScanSeverityRow{ScanType: s, Total: totals[s], Percent: make(map[string]float64, len(findings.SeverityOrder))}
		for _, sev := range findings.SeverityOrder {
			pct := 0.0
			if row.Total > 0 {
				pct = float64(counts[s].Get(sev)) / float64(row.Total) * 100
			}
			row.Percent[string(sev)] = pct
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func indexOf(keys []string) map[string]int {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return idx
}
