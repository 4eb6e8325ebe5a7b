// Package aggregate reduces a filtered record collection into chart-ready summaries.
//
// Every function here is pure: it reads its input slice, allocates its own result and
// keeps no state between calls. Results expose Empty so callers can render a
// placeholder instead of an empty chart.
package aggregate

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/open-sspm/vulndash/internal/findings"
)

// Optional is a float that may be absent. Means over empty groups are absent, never 0.
type Optional struct {
	Value float64
	Valid bool
}

func Some(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

func None() Optional {
	return Optional{}
}

// MarshalJSON encodes absent values as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o Optional) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// SeverityCounts holds one count per severity, indexed like findings.SeverityOrder.
type SeverityCounts [4]int

func (c SeverityCounts) Get(s findings.Severity) int {
	if i := severityIndex(s); i >= 0 {
		return c[i]
	}
	return 0
}

func (c *SeverityCounts) add(s findings.Severity) {
	if i := severityIndex(s); i >= 0 {
		c[i]++
	}
}

func (c SeverityCounts) Total() int {
	return c[0] + c[1] + c[2] + c[3]
}

func severityIndex(s findings.Severity) int {
	for i, sev := range findings.SeverityOrder {
		if sev == s {
			return i
		}
	}
	return -1
}

// Distribution is a five-number summary plus mean over a group of values.
type Distribution struct {
	Count  int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Mean   float64
}

// Describe sorts a copy of values and summarizes it. Quartiles use linear
// interpolation between closest ranks.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	cp := append([]float64(nil), values...)
	sort.Float64s(cp)
	return Distribution{
		Count:  len(cp),
		Min:    cp[0],
		Q1:     quantile(cp, 0.25),
		Median: quantile(cp, 0.5),
		Q3:     quantile(cp, 0.75),
		Max:    cp[len(cp)-1],
		Mean:   mean(cp).Value,
	}
}

func mean(values []float64) Optional {
	if len(values) == 0 {
		return None()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Some(sum / float64(len(values)))
}

func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// upperMedian is the element at index n/2 of an ascending slice.
func upperMedian[T int | float64](sorted []T) T {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)/2]
}

// counter counts string keys and remembers first-appearance order.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// byCount returns keys ordered by count; ties keep first-appearance order.
func (c *counter) byCount(desc bool) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		if desc {
			return c.counts[keys[i]] > c.counts[keys[j]]
		}
		return c.counts[keys[i]] < c.counts[keys[j]]
	})
	return keys
}

func filterRecords(records []findings.Record, keep func(findings.Record) bool) []findings.Record {
	out := make([]findings.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func openRecords(records []findings.Record) []findings.Record {
	return filterRecords(records, findings.Record.IsOpen)
}

func resolvedRecords(records []findings.Record) []findings.Record {
	return filterRecords(records, findings.Record.IsResolved)
}
