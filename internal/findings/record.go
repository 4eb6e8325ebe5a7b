// Package findings holds the typed finding record and the CSV parser that builds it.
package findings

import (
	"sort"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// SeverityOrder is the fixed presentation order, most severe first.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Rank returns an integer rank for comparison (Low=1, Critical=4, unknown=0).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

const (
	StatusOpen  = "open"
	StatusFixed = "fixed"

	IssueTypeVuln = "vuln"
)

// Record is one finding. Records are treated as immutable once parsed.
type Record struct {
	ID              string
	Org             string
	Project         string
	ScanType        string
	Severity        Severity
	RiskScore       float64
	PriorityScore   int
	CVSS            float64
	IssueType       string
	ExploitMaturity string
	Fixable         bool
	Status          string
	Discovered      time.Time
	Introduced      time.Time
	Resolved        *time.Time
	ResolutionDays  *float64
	CWE             string
	Language        string
	Title           string
}

func (r Record) IsOpen() bool {
	return r.Status == StatusOpen
}

// IsResolved reports whether the record is fixed and carries a resolution duration.
func (r Record) IsResolved() bool {
	return r.Status == StatusFixed && r.ResolutionDays != nil
}

func (r Record) IsVuln() bool {
	return r.IssueType == IssueTypeVuln
}

// Orgs returns the distinct organization names in ascending order.
func Orgs(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Org })
}

// ScanTypes returns the distinct scan types in ascending order.
func ScanTypes(records []Record) []string {
	return distinct(records, func(r Record) string { return r.ScanType })
}

// Projects returns the distinct project names in ascending order.
func Projects(records []Record) []string {
	return distinct(records, func(r Record) string { return r.Project })
}

func distinct(records []Record, key func(Record) string) []string {
	seen := make(map[string]struct{}, 16)
	out := make([]string, 0, 16)
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DatasetSummary describes a record collection for the header badges.
type DatasetSummary struct {
	Issues     int    `json:"issues"`
	Orgs       int    `json:"orgs"`
	Projects   int    `json:"projects"`
	FirstMonth string `json:"first_month,omitempty"`
	LastMonth  string `json:"last_month,omitempty"`
}

// HasRange reports whether at least one record had a valid discovery date.
func (s DatasetSummary) HasRange() bool {
	return s.FirstMonth != "" && s.LastMonth != ""
}

// Summarize builds the dataset summary. Records with an invalid discovery date are
// ignored for the month range.
func Summarize(records []Record) DatasetSummary {
	s := DatasetSummary{
		Issues:   len(records),
		Orgs:     len(Orgs(records)),
		Projects: len(Projects(records)),
	}
	var first, last time.Time
	for _, r := range records {
		if r.Discovered.IsZero() {
			continue
		}
		if first.IsZero() || r.Discovered.Before(first) {
			first = r.Discovered
		}
		if last.IsZero() || r.Discovered.After(last) {
			last = r.Discovered
		}
	}
	if !first.IsZero() {
		s.FirstMonth = MonthKey(first)
		s.LastMonth = MonthKey(last)
	}
	return s
}

// MonthKey formats t as a YYYY-MM bucket key in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ScanTypeLabel is the display label for a scan type token.
func ScanTypeLabel(scanType string) string {
	return strings.ToUpper(scanType)
}
