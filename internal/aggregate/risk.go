package aggregate

import (
	"math"

	"github.com/open-sspm/vulndash/internal/findings"
)

type ProjectPoint struct {
	Project       string  `json:"project"`
	Org           string  `json:"org"`
	Open          int     `json:"open"`
	MeanCVSS      float64 `json:"mean_cvss"`
	CriticalCount int     `json:"critical"`
	HighCount     int     `json:"high"`
	MarkerSize    float64 `json:"marker_size"`
}

// RiskScatter holds one point per project with open issues, in first-appearance
// order.
type RiskScatter struct {
	Projects []ProjectPoint `json:"projects"`
}

func (s RiskScatter) Empty() bool {
	return len(s.Projects) == 0
}

// MarkerSize grows with the number of open critical issues.
func MarkerSize(critical int) float64 {
	return math.Max(10, math.Sqrt(float64(critical+1))*14+6)
}

// ProjectRisk summarizes open records per project. The org of a project is the org
// of its first open record.
func ProjectRisk(records []findings.Record) RiskScatter {
	order := make([]string, 0, 16)
	points := map[string]*ProjectPoint{}
	cvss := map[string][]float64{}
	for _, r := range openRecords(records) {
		p, ok := points[r.Project]
		if !ok {
			p = &ProjectPoint{Project: r.Project, Org: r.Org}
			points[r.Project] = p
			order = append(order, r.Project)
		}
		p.Open++
		cvss[r.Project] = append(cvss[r.Project], r.CVSS)
		switch r.Severity {
		case findings.SeverityCritical:
			p.CriticalCount++
		case findings.SeverityHigh:
			p.HighCount++
		}
	}

	out := RiskScatter{Projects: make([]ProjectPoint, 0, len(order))}
	for _, name := range order {
		p := points[name]
		if p.Open == 0 {
			continue
		}
		p.MeanCVSS = mean(cvss[name]).Value
		p.MarkerSize = MarkerSize(p.CriticalCount)
		out.Projects = append(out.Projects, *p)
	}
	return out
}
