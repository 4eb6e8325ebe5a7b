package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/findings"
)

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("chart: no data to draw")

const (
	svgWidth  = 960
	svgHeight = 480
)

// WriteSVG draws fig as an SVG image with go-chart. Bars and pies map directly.
// Stacked bars and heatmap rows are drawn as share-per-category stacks, box and
// violin traces as their medians, and scatter traces as point or line series.
func WriteSVG(w io.Writer, title string, fig Figure) error {
	if len(fig.Data) == 0 {
		return ErrNoData
	}
	var err error
	switch fig.Data[0].Type {
	case "pie":
		err = writePie(w, title, fig.Data[0])
	case "heatmap":
		err = writeHeatmap(w, title, fig.Data[0])
	case "box", "violin":
		err = writeMedians(w, title, fig.Data)
	case "scatter":
		err = writeSeries(w, title, fig)
	default:
		if fig.Layout.BarMode == "stack" && len(fig.Data) > 1 {
			err = writeStacked(w, title, fig.Data)
		} else {
			err = writeBars(w, title, fig.Data)
		}
	}
	if err != nil && !errors.Is(err, ErrNoData) {
		return fmt.Errorf("render svg: %w", err)
	}
	return err
}

func writePie(w io.Writer, title string, t Trace) error {
	values := make([]gochart.Value, 0, len(t.Values))
	for i, v := range t.Values {
		if v <= 0 {
			continue
		}
		label := t.Labels[i]
		values = append(values, gochart.Value{
			Label: label,
			Value: float64(v),
			Style: gochart.Style{FillColor: hexColor(markerColor(t.Marker, i))},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}
	pie := gochart.PieChart{
		Title:  title,
		Width:  svgHeight,
		Height: svgHeight,
		Values: values,
	}
	return pie.Render(gochart.SVG, w)
}

// writeBars flattens every (category, trace) pair into one bar, colored by trace.
func writeBars(w io.Writer, title string, traces []Trace) error {
	var bars []gochart.Value
	max := 0.0
	for _, t := range traces {
		cats, vals := categoryValues(t)
		for i, cat := range cats {
			v, ok := number(vals[i])
			if !ok {
				continue
			}
			label := cat
			if len(traces) > 1 {
				label = cat + " / " + t.Name
			}
			bars = append(bars, gochart.Value{
				Label: label,
				Value: v,
				Style: gochart.Style{FillColor: hexColor(markerColor(t.Marker, i)), StrokeColor: hexColor(markerColor(t.Marker, i))},
			})
			max = math.Max(max, v)
		}
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	width, spacing := barGeometry(len(bars))
	bc := gochart.BarChart{
		Title:      title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: headroom(max)}},
		Bars:       bars,
	}
	return bc.Render(gochart.SVG, w)
}

// writeStacked draws one stack per category with one segment per trace.
func writeStacked(w io.Writer, title string, traces []Trace) error {
	cats, _ := categoryValues(traces[0])
	stacks := make([]gochart.StackedBar, 0, len(cats))
	for i, cat := range cats {
		bar := gochart.StackedBar{Name: cat}
		total := 0.0
		for _, t := range traces {
			_, vals := categoryValues(t)
			if i >= len(vals) {
				continue
			}
			v, ok := number(vals[i])
			if !ok || v <= 0 {
				continue
			}
			total += v
			bar.Values = append(bar.Values, gochart.Value{
				Label: t.Name,
				Value: v,
				Style: gochart.Style{FillColor: hexColor(markerColor(t.Marker, i)), StrokeColor: hexColor(markerColor(t.Marker, i))},
			})
		}
		if total > 0 {
			stacks = append(stacks, bar)
		}
	}
	return renderStacks(w, title, stacks)
}

func writeHeatmap(w io.Writer, title string, t Trace) error {
	stacks := make([]gochart.StackedBar, 0, len(t.Y))
	for i, row := range t.Y {
		if i >= len(t.Z) {
			break
		}
		bar := gochart.StackedBar{Name: label(row)}
		for j, v := range t.Z[i] {
			if v <= 0 || j >= len(t.X) {
				continue
			}
			sev := label(t.X[j])
			color := hexColor(SeverityColor(findings.Severity(sev)))
			bar.Values = append(bar.Values, gochart.Value{
				Label: sev,
				Value: float64(v),
				Style: gochart.Style{FillColor: color, StrokeColor: color},
			})
		}
		if len(bar.Values) > 0 {
			stacks = append(stacks, bar)
		}
	}
	return renderStacks(w, title, stacks)
}

func renderStacks(w io.Writer, title string, stacks []gochart.StackedBar) error {
	if len(stacks) == 0 {
		return ErrNoData
	}
	width, spacing := barGeometry(len(stacks))
	for i := range stacks {
		stacks[i].Width = width
	}
	sbc := gochart.StackedBarChart{
		Title:      title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		BarSpacing: spacing,
		Bars:       stacks,
	}
	return sbc.Render(gochart.SVG, w)
}

func writeMedians(w io.Writer, title string, traces []Trace) error {
	bars := make([]gochart.Value, 0, len(traces))
	max := 0.0
	for _, t := range traces {
		samples := t.X
		if len(samples) == 0 {
			samples = t.Y
		}
		values := make([]float64, 0, len(samples))
		for _, s := range samples {
			if v, ok := number(s); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		med := aggregate.Describe(values).Median
		color := fallbackColor
		if t.Line != nil && t.Line.Color != "" {
			color = t.Line.Color
		}
		bars = append(bars, gochart.Value{
			Label: t.Name,
			Value: med,
			Style: gochart.Style{FillColor: hexColor(color), StrokeColor: hexColor(color)},
		})
		max = math.Max(max, med)
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	width, spacing := barGeometry(len(bars))
	bc := gochart.BarChart{
		Title:      title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		BarWidth:   width,
		BarSpacing: spacing,
		YAxis:      gochart.YAxis{Name: "median", Range: &gochart.ContinuousRange{Min: 0, Max: headroom(max)}},
		Bars:       bars,
	}
	return bc.Render(gochart.SVG, w)
}

// writeSeries draws scatter traces. Categorical x values are placed at their index
// and labelled with ticks.
func writeSeries(w io.Writer, title string, fig Figure) error {
	var (
		series []gochart.Series
		ticks  []gochart.Tick
		maxX   = 1.0
		maxY   = 0.0
	)
	for ti, t := range fig.Data {
		n := len(t.X)
		if len(t.Y) < n {
			n = len(t.Y)
		}
		xs := make([]float64, 0, n)
		ys := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			y, ok := number(t.Y[i])
			if !ok {
				continue
			}
			x, numeric := number(t.X[i])
			if !numeric {
				x = float64(i)
				if ti == 0 {
					ticks = append(ticks, gochart.Tick{Value: x, Label: label(t.X[i])})
				}
			}
			xs = append(xs, x)
			ys = append(ys, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
		if len(xs) == 0 {
			continue
		}
		color := hexColor(traceColor(t))
		style := gochart.Style{StrokeColor: color, StrokeWidth: 2}
		if strings.Contains(t.Mode, "markers") {
			style = pointStyle(color)
		}
		series = append(series, gochart.ContinuousSeries{Name: t.Name, XValues: xs, YValues: ys, Style: style})
	}
	if len(series) == 0 {
		return ErrNoData
	}
	ch := gochart.Chart{
		Title:      title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      gochart.XAxis{Ticks: ticks, Range: &gochart.ContinuousRange{Min: 0, Max: maxX}},
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: headroom(maxY)}},
		Series:     series,
	}
	if fig.Layout.XAxis != nil && fig.Layout.XAxis.Title != nil {
		ch.XAxis.Name = fig.Layout.XAxis.Title.Text
	}
	if fig.Layout.YAxis != nil && fig.Layout.YAxis.Title != nil {
		ch.YAxis.Name = fig.Layout.YAxis.Title.Text
	}
	if len(series) > 1 {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return ch.Render(gochart.SVG, w)
}

func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: 0,
		DotWidth:    5,
		DotColor:    col,
	}
}

// categoryValues returns the category labels and value cells of a bar trace.
func categoryValues(t Trace) ([]string, []any) {
	cats, vals := t.X, t.Y
	if t.Orientation == "h" {
		cats, vals = t.Y, t.X
	}
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = label(c)
	}
	if len(vals) < len(out) {
		out = out[:len(vals)]
	}
	return out, vals
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, !math.IsNaN(n)
	case aggregate.Optional:
		return n.Value, n.Valid
	default:
		return 0, false
	}
}

func label(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func markerColor(m *Marker, i int) string {
	if m == nil {
		return fallbackColor
	}
	switch c := m.Color.(type) {
	case string:
		return c
	case []string:
		if i < len(c) {
			return c[i]
		}
	}
	if i < len(m.Colors) {
		return m.Colors[i]
	}
	return fallbackColor
}

func traceColor(t Trace) string {
	if t.Line != nil && t.Line.Color != "" {
		return t.Line.Color
	}
	if t.Marker != nil {
		if c, ok := t.Marker.Color.(string); ok {
			return c
		}
	}
	return aboveMedianColor
}

func hexColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) > 6 {
		hex = hex[:6]
	}
	return drawing.ColorFromHex(hex)
}

func barGeometry(n int) (width, spacing int) {
	slot := (svgWidth - 120) / n
	width = slot * 2 / 3
	if width < 4 {
		width = 4
	}
	spacing = slot - width
	if spacing < 2 {
		spacing = 2
	}
	return width, spacing
}

func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}
