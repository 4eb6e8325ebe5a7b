package aggregate

import (
	"sort"

	"github.com/open-sspm/vulndash/internal/findings"
)

// MonthBucket is the per-severity count for one discovery month.
type MonthBucket struct {
	Month  string         `json:"month"`
	Counts SeverityCounts `json:"counts"`
}

// Trend is the monthly discovery series in chronological order.
type Trend struct {
	Months []MonthBucket `json:"months"`
}

func (t Trend) Empty() bool {
	return len(t.Months) == 0
}

// DiscoveryTrend buckets records by the YYYY-MM of their discovery date. Records with
// an invalid discovery date are left out.
func DiscoveryTrend(records []findings.Record) Trend {
	buckets := map[string]*MonthBucket{}
	for _, r := range records {
		if r.Discovered.IsZero() {
			continue
		}
		key := findings.MonthKey(r.Discovered)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		b.Counts.add(r.Severity)
	}
	out := Trend{Months: make([]MonthBucket, 0, len(buckets))}
	for _, b := range buckets {
		out.Months = append(out.Months, *b)
	}
	sort.Slice(out.Months, func(i, j int) bool { return out.Months[i].Month < out.Months[j].Month })
	return out
}
