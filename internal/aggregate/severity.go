package aggregate

import "github.com/open-sspm/vulndash/internal/findings"

// OrgSeverityRow is one organization's per-severity counts.
type OrgSeverityRow struct {
	Org    string         `json:"org"`
	Counts SeverityCounts `json:"counts"`
}

// SeverityMatrix is a per-organization severity table. Rows are sorted by org.
type SeverityMatrix struct {
	Rows []OrgSeverityRow `json:"rows"`
	// populated is false when the source group was empty.
	populated bool
}

func (m SeverityMatrix) Empty() bool {
	return !m.populated
}

// Max returns the largest cell, used for color scaling.
func (m SeverityMatrix) Max() int {
	max := 0
	for _, row := range m.Rows {
		for _, v := range row.Counts {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// SeverityByOrg counts open records per (organization, severity). Every organization
// present in the input gets a row, including those with no open records.
func SeverityByOrg(records []findings.Record) SeverityMatrix {
	open := openRecords(records)
	if len(open) == 0 {
		return SeverityMatrix{}
	}
	return SeverityMatrix{Rows: severityRows(findings.Orgs(records), open), populated: true}
}

// SeverityStack counts all records per (organization, severity).
func SeverityStack(records []findings.Record) SeverityMatrix {
	if len(records) == 0 {
		return SeverityMatrix{}
	}
	return SeverityMatrix{Rows: severityRows(findings.Orgs(records), records), populated: true}
}

func severityRows(orgs []string, records []findings.Record) []OrgSeverityRow {
	index := make(map[string]int, len(orgs))
	rows := make([]OrgSeverityRow, len(orgs))
	for i, org := range orgs {
		index[org] = i
		rows[i].Org = org
	}
	for _, r := range records {
		if i, ok := index[r.Org]; ok {
			rows[i].Counts.add(r.Severity)
		}
	}
	return rows
}

// SeverityShare is the overall count per severity.
type SeverityShare struct {
	Counts SeverityCounts `json:"counts"`
}

func (s SeverityShare) Empty() bool {
	return s.Counts.Total() == 0
}

func SeverityShareOf(records []findings.Record) SeverityShare {
	var s SeverityShare
	for _, r := range records {
		s.Counts.add(r.Severity)
	}
	return s
}
