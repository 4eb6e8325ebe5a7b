package aggregate

import "github.com/open-sspm/vulndash/internal/findings"

type OrgMTTR struct {
	Org string `json:"org"`
	// Mean holds the mean days per severity in findings.SeverityOrder order. A group
	// without fixed records is absent.
	Mean [4]Optional `json:"mean_days"`
}

func (o OrgMTTR) Get(s findings.Severity) Optional {
	if i := severityIndex(s); i >= 0 {
		return o.Mean[i]
	}
	return None()
}

// MTTRMatrix is the mean time to resolution per (organization, severity).
type MTTRMatrix struct {
	Orgs []OrgMTTR `json:"orgs"`
}

func (m MTTRMatrix) Empty() bool {
	return len(m.Orgs) == 0
}

// MTTRByOrg averages resolution days of fixed records by organization and severity.
// Organizations come from the whole input so every org keeps its column.
func MTTRByOrg(records []findings.Record) MTTRMatrix {
	fixed := resolvedRecords(records)
	if len(fixed) == 0 {
		return MTTRMatrix{}
	}
	orgs := findings.Orgs(records)
	idx := indexOf(orgs)
	days := make([][4][]float64, len(orgs))
	for _, r := range fixed {
		if s := severityIndex(r.Severity); s >= 0 {
			o := idx[r.Org]
			days[o][s] = append(days[o][s], *r.ResolutionDays)
		}
	}
	out := MTTRMatrix{Orgs: make([]OrgMTTR, len(orgs))}
	for i, org := range orgs {
		out.Orgs[i].Org = org
		for s := range findings.SeverityOrder {
			out.Orgs[i].Mean[s] = mean(days[i][s])
		}
	}
	return out
}

type SeverityDays struct {
	Severity findings.Severity `json:"severity"`
	Days     []float64         `json:"days"`
	Stats    Distribution      `json:"stats"`
}

// MTTRSpread holds the resolution-day samples per severity, most severe first. Only
// severities with at least one fixed record appear.
type MTTRSpread struct {
	Severities []SeverityDays `json:"severities"`
}

func (s MTTRSpread) Empty() bool {
	return len(s.Severities) == 0
}

func MTTRDistribution(records []findings.Record) MTTRSpread {
	var days [4][]float64
	for _, r := range resolvedRecords(records) {
		if s := severityIndex(r.Severity); s >= 0 {
			days[s] = append(days[s], *r.ResolutionDays)
		}
	}
	var out MTTRSpread
	for i, sev := range findings.SeverityOrder {
		if len(days[i]) == 0 {
			continue
		}
		out.Severities = append(out.Severities, SeverityDays{Severity: sev, Days: days[i], Stats: Describe(days[i])})
	}
	return out
}
