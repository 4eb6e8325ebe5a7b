package chart

import "github.com/open-sspm/vulndash/internal/findings"

var severityColors = map[findings.Severity]string{
	findings.SeverityCritical: "#AB1A1A",
	findings.SeverityHigh:     "#CE5019",
	findings.SeverityMedium:   "#D68000",
	findings.SeverityLow:      "#88879E",
}

var scanColors = map[string]string{
	"sca":  "#3B82F6",
	"sast": "#8B5CF6",
	"iac":  "#10B981",
}

var exploitColors = map[string]string{
	"no-known-exploit": "#88879E",
	"proof-of-concept": "#D68000",
	"mature":           "#AB1A1A",
}

const (
	fallbackColor    = "#888888"
	aboveMedianColor = "#CE5019"
	belowMedianColor = "#D68000"
	fixableColor     = "#22C55E"
	notFixableColor  = "#EF4444"
	cvssColor        = "#7E3AF2"
	cvssFillColor    = "#EDE9FE"
	pointLineColor   = "#64748B"
)

var heatmapScale = [][2]any{
	{0, "#FEF3C7"},
	{0.25, "#FCA5A5"},
	{0.5, "#EF4444"},
	{0.75, "#B91C1C"},
	{1, "#7F1D1D"},
}

// SeverityColor returns the display color of s.
func SeverityColor(s findings.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return fallbackColor
}

func scanColor(scan string) string {
	if c, ok := scanColors[scan]; ok {
		return c
	}
	return fallbackColor
}

func exploitColor(maturity string) string {
	if c, ok := exploitColors[maturity]; ok {
		return c
	}
	return fallbackColor
}
