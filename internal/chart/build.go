package chart

import (
	"strconv"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/findings"
)

// UnknownLanguage labels records without a language.
const UnknownLanguage = "unknown"

type builder func(records []findings.Record) (Figure, bool)

var builders = map[ID]builder{
	Heatmap:      heatmapFigure,
	OrgTotals:    orgTotalsFigure,
	SeverityBar:  severityBarFigure,
	SeverityPie:  severityPieFigure,
	Trend:        trendFigure,
	ScanType:     scanTypeFigure,
	ScanSeverity: scanSeverityFigure,
	Language:     languageFigure,
	CVSSBox:      cvssFigure,
	MTTRBar:      mttrBarFigure,
	MTTRViolin:   mttrViolinFigure,
	Fixability:   fixabilityFigure,
	Exploit:      exploitFigure,
	CWE:          cweFigure,
	ProjectRisk:  scatterFigure,
}

// Build runs the aggregation behind id and adapts it to a figure. ok is false when
// the aggregation reported no data or id is unknown.
func Build(id ID, records []findings.Record) (fig Figure, ok bool) {
	b, found := builders[id]
	if !found {
		return Figure{}, false
	}
	return b(records)
}

// Draw builds the chart for id and forwards it to r, or forwards the placeholder
// message when there is nothing to draw. It reports whether a figure was drawn.
func Draw(r Renderer, id ID, records []findings.Record) bool {
	fig, ok := Build(id, records)
	if !ok {
		r.RenderEmpty(id, EmptyMessage(id))
		return false
	}
	r.Render(id, fig)
	return true
}

func heatmapFigure(records []findings.Record) (Figure, bool) {
	m := aggregate.SeverityByOrg(records)
	if m.Empty() {
		return Figure{}, false
	}
	orgs := make([]any, len(m.Rows))
	z := make([][]int, len(m.Rows))
	text := make([][]string, len(m.Rows))
	for i, row := range m.Rows {
		orgs[i] = row.Org
		z[i] = append([]int(nil), row.Counts[:]...)
		text[i] = make([]string, len(row.Counts))
		for j, v := range row.Counts {
			if v > 0 {
				text[i][j] = strconv.Itoa(v)
			}
		}
	}
	return Figure{
		Data: []Trace{{
			Type:          "heatmap",
			X:             severityLabels(),
			Y:             orgs,
			Z:             z,
			ColorScale:    heatmapScale,
			Text:          text,
			TextTemplate:  "%{text}",
			ShowScale:     true,
			HoverTemplate: "<b>%{y}</b><br>%{x}: <b>%{z}</b><extra></extra>",
		}},
		Layout: Layout{
			Margin: &Margin{T: 10, R: 80, B: 50, L: 180},
			YAxis:  &Axis{AutoMargin: true},
		},
	}, true
}

func orgTotalsFigure(records []findings.Record) (Figure, bool) {
	t := aggregate.OpenByOrg(records)
	if t.Empty() {
		return Figure{}, false
	}
	x := make([]any, len(t.Orgs))
	y := make([]any, len(t.Orgs))
	text := make([]string, len(t.Orgs))
	colors := make([]string, len(t.Orgs))
	for i, o := range t.Orgs {
		x[i] = o.Open
		y[i] = o.Org
		text[i] = strconv.Itoa(o.Open)
		colors[i] = belowMedianColor
		if o.AboveMedian {
			colors[i] = aboveMedianColor
		}
	}
	return Figure{
		Data: []Trace{{
			Type:          "bar",
			Orientation:   "h",
			X:             x,
			Y:             y,
			Text:          text,
			TextPosition:  "outside",
			Marker:        &Marker{Color: colors},
			HoverTemplate: "<b>%{y}</b><br>Open: <b>%{x}</b><extra></extra>",
		}},
		Layout: Layout{
			Margin: &Margin{T: 10, R: 50, B: 40, L: 170},
			XAxis:  axisTitle("Count"),
			YAxis:  &Axis{AutoMargin: true},
			BarGap: 0.3,
		},
	}, true
}

func severityBarFigure(records []findings.Record) (Figure, bool) {
	m := aggregate.SeverityStack(records)
	if m.Empty() {
		return Figure{}, false
	}
	orgs := make([]any, len(m.Rows))
	for i, row := range m.Rows {
		orgs[i] = row.Org
	}
	traces := make([]Trace, 0, len(findings.SeverityOrder))
	for _, sev := range findings.SeverityOrder {
		y := make([]any, len(m.Rows))
		for i, row := range m.Rows {
			y[i] = row.Counts.Get(sev)
		}
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          sev.String(),
			X:             orgs,
			Y:             y,
			Marker:        &Marker{Color: SeverityColor(sev)},
			HoverTemplate: "<b>%{x}</b><br>" + sev.String() + ": <b>%{y}</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Margin:  &Margin{T: 10, R: 10, B: 90, L: 50},
			XAxis:   &Axis{TickAngle: -30},
			YAxis:   axisTitle("Issue Count"),
		},
	}, true
}

func severityPieFigure(records []findings.Record) (Figure, bool) {
	s := aggregate.SeverityShareOf(records)
	if s.Empty() {
		return Figure{}, false
	}
	labels := make([]string, len(findings.SeverityOrder))
	colors := make([]string, len(findings.SeverityOrder))
	for i, sev := range findings.SeverityOrder {
		labels[i] = sev.String()
		colors[i] = SeverityColor(sev)
	}
	return Figure{
		Data: []Trace{{
			Type:          "pie",
			Labels:        labels,
			Values:        append([]int(nil), s.Counts[:]...),
			Marker:        &Marker{Colors: colors},
			TextInfo:      "label+percent",
			Hole:          0.38,
			Sort:          boolPtr(false),
			HoverTemplate: "<b>%{label}</b><br>%{value} issues (%{percent})<extra></extra>",
		}},
		Layout: Layout{
			Margin:     &Margin{T: 20, R: 20, B: 20, L: 20},
			ShowLegend: boolPtr(true),
			Legend:     &Legend{Orientation: "h", X: 0.5, Y: -0.12, XAnchor: "center"},
		},
	}, true
}

// trendStack lists severities bottom to top so critical ends up on top.
var trendStack = []findings.Severity{
	findings.SeverityLow,
	findings.SeverityMedium,
	findings.SeverityHigh,
	findings.SeverityCritical,
}

func trendFigure(records []findings.Record) (Figure, bool) {
	t := aggregate.DiscoveryTrend(records)
	if t.Empty() {
		return Figure{}, false
	}
	months := make([]any, len(t.Months))
	for i, m := range t.Months {
		months[i] = m.Month
	}
	traces := make([]Trace, 0, len(trendStack))
	for _, sev := range trendStack {
		y := make([]any, len(t.Months))
		for i, m := range t.Months {
			y[i] = m.Counts.Get(sev)
		}
		traces = append(traces, Trace{
			Type:          "scatter",
			Mode:          "lines",
			Name:          sev.String(),
			X:             months,
			Y:             y,
			StackGroup:    "one",
			FillColor:     SeverityColor(sev) + "CC",
			Line:          &Line{Color: SeverityColor(sev), Width: 0.5},
			HoverTemplate: "%{x}<br>" + sev.String() + ": <b>%{y}</b><extra></extra>",
		})
	}
	legend := horizontalLegend()
	legend.TraceOrder = "reversed"
	return Figure{
		Data: traces,
		Layout: Layout{
			Margin: &Margin{T: 10, R: 10, B: 55, L: 55},
			XAxis:  &Axis{Title: &AxisTitle{Text: "Month"}, TickAngle: -30, NTicks: 14},
			YAxis:  axisTitle("Issues Discovered"),
			Legend: legend,
		},
	}, true
}

func scanTypeFigure(records []findings.Record) (Figure, bool) {
	m := aggregate.ScanTypeByOrg(records)
	if m.Empty() {
		return Figure{}, false
	}
	orgs := texts(m.Orgs)
	traces := make([]Trace, 0, len(m.ScanTypes))
	for i, scan := range m.ScanTypes {
		label := findings.ScanTypeLabel(scan)
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          label,
			X:             orgs,
			Y:             ints(m.Counts[i]),
			Marker:        &Marker{Color: scanColor(scan)},
			HoverTemplate: "<b>%{x}</b><br>" + label + ": <b>%{y}</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "group",
			Margin:  &Margin{T: 10, R: 10, B: 90, L: 50},
			XAxis:   &Axis{TickAngle: -30},
			YAxis:   axisTitle("Issue Count"),
		},
	}, true
}

func scanSeverityFigure(records []findings.Record) (Figure, bool) {
	mix := aggregate.ScanSeverityMixOf(records)
	if mix.Empty() {
		return Figure{}, false
	}
	scans := make([]any, len(mix.Rows))
	for i, row := range mix.Rows {
		scans[i] = row.ScanType
	}
	traces := make([]Trace, 0, len(findings.SeverityOrder))
	for _, sev := range findings.SeverityOrder {
		x := make([]any, len(mix.Rows))
		for i := range mix.Rows {
			x[i] = mix.Share(i, sev)
		}
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          sev.String(),
			Orientation:   "h",
			X:             x,
			Y:             scans,
			Marker:        &Marker{Color: SeverityColor(sev)},
			HoverTemplate: sev.String() + ": <b>%{x:.1f}%</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Margin:  &Margin{T: 10, R: 10, B: 40, L: 70},
			XAxis:   &Axis{Title: &AxisTitle{Text: "Percentage"}, Range: []float64{0, 100}},
			Legend:  horizontalLegend(),
		},
	}, true
}

func languageFigure(records []findings.Record) (Figure, bool) {
	b := aggregate.LanguageSeverity(records)
	if b.Empty() {
		return Figure{}, false
	}
	langs := make([]any, len(b.Rows))
	for i, row := range b.Rows {
		langs[i] = languageLabel(row.Language)
	}
	traces := make([]Trace, 0, len(findings.SeverityOrder))
	for _, sev := range findings.SeverityOrder {
		x := make([]any, len(b.Rows))
		for i, row := range b.Rows {
			x[i] = row.Counts.Get(sev)
		}
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          sev.String(),
			Orientation:   "h",
			X:             x,
			Y:             langs,
			Marker:        &Marker{Color: SeverityColor(sev)},
			HoverTemplate: "<b>%{y}</b><br>" + sev.String() + ": <b>%{x}</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Margin:  &Margin{T: 10, R: 10, B: 40, L: 90},
			XAxis:   axisTitle("Issue Count"),
			YAxis:   &Axis{AutoMargin: true},
		},
	}, true
}

func cvssFigure(records []findings.Record) (Figure, bool) {
	d := aggregate.CVSSByLanguage(records)
	if d.Empty() {
		return Figure{}, false
	}
	traces := make([]Trace, 0, len(d.Languages))
	for _, lang := range d.Languages {
		name := languageLabel(lang.Language)
		traces = append(traces, Trace{
			Type:          "box",
			Name:          name,
			Orientation:   "h",
			X:             floats(lang.Scores),
			BoxMean:       true,
			Marker:        &Marker{Color: cvssColor, Size: []float64{3}, Opacity: 0.5},
			Line:          &Line{Color: cvssColor},
			FillColor:     cvssFillColor,
			HoverTemplate: "<b>" + name + "</b><br>CVSS: %{x:.1f}<extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			ShowLegend: boolPtr(false),
			Margin:     &Margin{T: 30, R: 20, B: 40, L: 90},
			XAxis:      &Axis{Title: &AxisTitle{Text: "CVSS Score"}, Range: []float64{0, 10.5}},
			YAxis:      &Axis{AutoMargin: true},
			Shapes:     []Shape{vline(7.0, "red"), vline(9.0, "#7F1D1D")},
			Annotations: []Annotation{
				{X: 7.05, Y: 1.06, YRef: "paper", Text: "High (7.0)", XAnchor: "left", Font: &Font{Size: 9, Color: "red"}},
				{X: 9.05, Y: 1.06, YRef: "paper", Text: "Critical (9.0)", XAnchor: "left", Font: &Font{Size: 9, Color: "#7F1D1D"}},
			},
		},
	}, true
}

func mttrBarFigure(records []findings.Record) (Figure, bool) {
	m := aggregate.MTTRByOrg(records)
	if m.Empty() {
		return Figure{}, false
	}
	orgs := make([]any, len(m.Orgs))
	for i, o := range m.Orgs {
		orgs[i] = o.Org
	}
	traces := make([]Trace, 0, len(findings.SeverityOrder))
	for _, sev := range findings.SeverityOrder {
		y := make([]any, len(m.Orgs))
		for i, o := range m.Orgs {
			y[i] = o.Get(sev)
		}
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          sev.String(),
			X:             orgs,
			Y:             y,
			Marker:        &Marker{Color: SeverityColor(sev)},
			HoverTemplate: "<b>%{x}</b><br>" + sev.String() + ": <b>%{y:.1f} days</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "group",
			Margin:  &Margin{T: 30, R: 10, B: 90, L: 60},
			XAxis:   &Axis{TickAngle: -30},
			YAxis:   axisTitle("Days"),
			Shapes:  []Shape{hline(15, "red", 1.5), hline(30, "orange", 1.5)},
			Annotations: []Annotation{
				{X: 1, Y: 15, XRef: "paper", Text: "Critical SLA (15d)", XAnchor: "right", YAnchor: "bottom", Font: &Font{Size: 9, Color: "red"}},
				{X: 1, Y: 30, XRef: "paper", Text: "High SLA (30d)", XAnchor: "right", YAnchor: "bottom", Font: &Font{Size: 9, Color: "#D97706"}},
			},
		},
	}, true
}

func mttrViolinFigure(records []findings.Record) (Figure, bool) {
	s := aggregate.MTTRDistribution(records)
	if s.Empty() {
		return Figure{}, false
	}
	traces := make([]Trace, 0, len(s.Severities))
	for _, g := range s.Severities {
		color := SeverityColor(g.Severity)
		traces = append(traces, Trace{
			Type:          "violin",
			Name:          g.Severity.String(),
			Y:             floats(g.Days),
			FillColor:     color + "99",
			Line:          &Line{Color: color},
			Box:           &Toggle{Visible: true},
			MeanLine:      &Toggle{Visible: true},
			Points:        "all",
			HoverTemplate: g.Severity.String() + ": <b>%{y:.1f}d</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			ShowLegend: boolPtr(false),
			ViolinMode: "overlay",
			Margin:     &Margin{T: 10, R: 10, B: 40, L: 60},
			YAxis:      axisTitle("Days to Fix"),
		},
	}, true
}

func fixabilityFigure(records []findings.Record) (Figure, bool) {
	f := aggregate.FixabilityByOrg(records)
	if f.Empty() {
		return Figure{}, false
	}
	orgs := make([]any, len(f.Orgs))
	fix := make([]any, len(f.Orgs))
	notFix := make([]any, len(f.Orgs))
	for i, o := range f.Orgs {
		orgs[i] = o.Org
		fix[i] = o.FixablePct
		notFix[i] = o.NotFixablePct
	}
	return Figure{
		Data: []Trace{
			{
				Type:          "bar",
				Name:          "Fixable",
				Orientation:   "h",
				X:             fix,
				Y:             orgs,
				Marker:        &Marker{Color: fixableColor},
				HoverTemplate: "<b>%{y}</b><br>Fixable: <b>%{x:.1f}%</b><extra></extra>",
			},
			{
				Type:          "bar",
				Name:          "Not Fixable",
				Orientation:   "h",
				X:             notFix,
				Y:             orgs,
				Marker:        &Marker{Color: notFixableColor},
				HoverTemplate: "<b>%{y}</b><br>Not Fixable: <b>%{x:.1f}%</b><extra></extra>",
			},
		},
		Layout: Layout{
			BarMode: "stack",
			Margin:  &Margin{T: 10, R: 10, B: 40, L: 180},
			XAxis:   &Axis{Title: &AxisTitle{Text: "Percentage"}, Range: []float64{0, 100}},
			YAxis:   &Axis{AutoMargin: true},
			Legend:  horizontalLegend(),
		},
	}, true
}

func exploitFigure(records []findings.Record) (Figure, bool) {
	b := aggregate.ExploitMaturity(records)
	if b.Empty() {
		return Figure{}, false
	}
	traces := make([]Trace, 0, len(b.Rows))
	for _, row := range b.Rows {
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          row.Maturity,
			X:             severityLabels(),
			Y:             ints(row.Counts[:]),
			Marker:        &Marker{Color: exploitColor(row.Maturity)},
			HoverTemplate: "<b>%{x}</b><br>" + row.Maturity + ": <b>%{y}</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "group",
			Margin:  &Margin{T: 10, R: 10, B: 40, L: 50},
			YAxis:   axisTitle("Issue Count"),
			Legend:  horizontalLegend(),
		},
	}, true
}

func cweFigure(records []findings.Record) (Figure, bool) {
	r := aggregate.TopCWE(records)
	if r.Empty() {
		return Figure{}, false
	}
	labels := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		labels[i] = row.Label
	}
	traces := make([]Trace, 0, len(findings.SeverityOrder))
	for _, sev := range findings.SeverityOrder {
		x := make([]any, len(r.Rows))
		for i, row := range r.Rows {
			x[i] = row.Counts.Get(sev)
		}
		traces = append(traces, Trace{
			Type:          "bar",
			Name:          sev.String(),
			Orientation:   "h",
			X:             x,
			Y:             labels,
			Marker:        &Marker{Color: SeverityColor(sev)},
			HoverTemplate: "<b>%{y}</b><br>" + sev.String() + ": <b>%{x}</b><extra></extra>",
		})
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			BarMode: "stack",
			Margin:  &Margin{T: 10, R: 10, B: 40, L: 280},
			XAxis:   axisTitle("Issue Count"),
			YAxis:   &Axis{AutoMargin: true},
		},
	}, true
}

func scatterFigure(records []findings.Record) (Figure, bool) {
	s := aggregate.ProjectRisk(records)
	if s.Empty() {
		return Figure{}, false
	}
	n := len(s.Projects)
	x := make([]any, n)
	y := make([]any, n)
	text := make([]string, n)
	sizes := make([]float64, n)
	highs := make([]int, n)
	custom := make([][]any, n)
	for i, p := range s.Projects {
		x[i] = p.Open
		y[i] = p.MeanCVSS
		text[i] = p.Project
		sizes[i] = p.MarkerSize
		highs[i] = p.HighCount
		custom[i] = []any{p.Org, p.CriticalCount, p.HighCount, p.Open}
	}
	return Figure{
		Data: []Trace{{
			Type:         "scatter",
			Mode:         "markers+text",
			X:            x,
			Y:            y,
			Text:         text,
			TextPosition: "top center",
			Marker: &Marker{
				Color:      highs,
				Size:       sizes,
				ColorScale: "YlOrRd",
				ShowScale:  true,
				Opacity:    0.85,
				SizeMode:   "diameter",
				Line:       &Line{Color: pointLineColor, Width: 1},
			},
			CustomData: custom,
			HoverTemplate: "<b>%{text}</b><br>Org: %{customdata[0]}<br>Open Issues: %{customdata[3]}" +
				"<br>Avg CVSS: %{y:.2f}<br>Critical: %{customdata[1]} · High: %{customdata[2]}<extra></extra>",
		}},
		Layout: Layout{
			ShowLegend: boolPtr(false),
			Margin:     &Margin{T: 20, R: 90, B: 55, L: 60},
			XAxis:      axisTitle("Total Open Issues"),
			YAxis:      axisTitle("Average CVSS Score"),
			Shapes:     []Shape{hline(7.0, "red", 1)},
			Annotations: []Annotation{
				{X: 0, Y: 7.05, XRef: "paper", Text: "High CVSS threshold (7.0)", XAnchor: "left", Font: &Font{Size: 9, Color: "#EF4444"}},
			},
		},
	}, true
}

func languageLabel(lang string) string {
	if lang == "" {
		return UnknownLanguage
	}
	return lang
}

func severityLabels() []any {
	out := make([]any, len(findings.SeverityOrder))
	for i, sev := range findings.SeverityOrder {
		out[i] = sev.String()
	}
	return out
}

func texts(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func ints(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func floats(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
