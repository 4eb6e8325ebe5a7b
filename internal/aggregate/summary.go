package aggregate

import "github.com/open-sspm/vulndash/internal/findings"

// Summary holds the headline counters shown above the charts.
type Summary struct {
	Total        int      `json:"total"`
	OpenCritical int      `json:"open_critical"`
	OpenHigh     int      `json:"open_high"`
	Fixed        int      `json:"fixed"`
	MeanMTTR     Optional `json:"mean_mttr_days"`
}

func (s Summary) Empty() bool {
	return s.Total == 0
}

// Summarize computes the counters. Fixed counts only issues that carry a resolution
// duration, matching the population the mean is taken over.
func Summarize(records []findings.Record) Summary {
	s := Summary{Total: len(records)}
	days := make([]float64, 0, len(records))
	for _, r := range records {
		switch {
		case r.IsOpen() && r.Severity == findings.SeverityCritical:
			s.OpenCritical++
		case r.IsOpen() && r.Severity == findings.SeverityHigh:
			s.OpenHigh++
		case r.IsResolved():
			days = append(days, *r.ResolutionDays)
		}
	}
	s.Fixed = len(days)
	s.MeanMTTR = mean(days)
	return s
}
