// Package chart turns aggregation results into chart figures and forwards them to a
// Renderer.
package chart

// ID names a chart slot on the dashboard page.
type ID string

const (
	Heatmap      ID = "chart-heatmap"
	OrgTotals    ID = "chart-org-totals"
	SeverityBar  ID = "chart-severity-bar"
	SeverityPie  ID = "chart-severity-pie"
	Trend        ID = "chart-trend"
	ScanType     ID = "chart-scan-type"
	ScanSeverity ID = "chart-scan-severity"
	Language     ID = "chart-language"
	CVSSBox      ID = "chart-cvss-box"
	MTTRBar      ID = "chart-mttr-bar"
	MTTRViolin   ID = "chart-mttr-violin"
	Fixability   ID = "chart-fixability"
	Exploit      ID = "chart-exploit"
	CWE          ID = "chart-cwe"
	ProjectRisk  ID = "chart-scatter"
)

// Order is the fixed render order.
var Order = []ID{
	Heatmap,
	OrgTotals,
	SeverityBar,
	SeverityPie,
	Trend,
	ScanType,
	ScanSeverity,
	Language,
	CVSSBox,
	MTTRBar,
	MTTRViolin,
	Fixability,
	Exploit,
	CWE,
	ProjectRisk,
}

// DefaultEmptyMessage is shown when a chart has nothing to draw.
const DefaultEmptyMessage = "No data available for the current selection"

var emptyMessages = map[ID]string{
	CVSSBox:    "No vulnerability data with CVSS scores",
	MTTRBar:    "No fixed issues in current selection",
	MTTRViolin: "No fixed issues in current selection",
	Exploit:    "No exploit maturity data in current selection",
	CWE:        "No vulnerability data with CWE IDs in current selection",
}

// EmptyMessage returns the placeholder text for id.
func EmptyMessage(id ID) string {
	if msg, ok := emptyMessages[id]; ok {
		return msg
	}
	return DefaultEmptyMessage
}

var titles = map[ID]string{
	Heatmap:      "Open Issues by Organization and Severity",
	OrgTotals:    "Open Issues per Organization",
	SeverityBar:  "Severity Breakdown by Organization",
	SeverityPie:  "Overall Severity Distribution",
	Trend:        "Monthly Discovery Trend",
	ScanType:     "Issues by Scan Type",
	ScanSeverity: "Severity Mix per Scan Type",
	Language:     "Issues by Language",
	CVSSBox:      "CVSS Score Distribution by Language",
	MTTRBar:      "Mean Time to Resolve by Organization",
	MTTRViolin:   "Resolution Time Distribution by Severity",
	Fixability:   "Fixability by Organization",
	Exploit:      "Exploit Maturity by Severity",
	CWE:          "Top 10 CWE Categories",
	ProjectRisk:  "Project Risk Map",
}

// Title returns the heading shown above the chart.
func Title(id ID) string {
	if t, ok := titles[id]; ok {
		return t
	}
	return string(id)
}

// Known reports whether id names one of the dashboard slots.
func Known(id ID) bool {
	_, ok := titles[id]
	return ok
}
