package chart

// Figure is a Plotly-compatible chart payload. The browser merges Layout over its
// shared base layout before drawing.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. X and Y hold strings for categorical axes and numbers
// (or absent values encoded as null) for value axes.
type Trace struct {
	Type          string   `json:"type"`
	Name          string   `json:"name,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Orientation   string   `json:"orientation,omitempty"`
	X             []any    `json:"x,omitempty"`
	Y             []any    `json:"y,omitempty"`
	Z             [][]int  `json:"z,omitempty"`
	Labels        []string `json:"labels,omitempty"`
	Values        []int    `json:"values,omitempty"`
	Text          any      `json:"text,omitempty"`
	TextPosition  string   `json:"textposition,omitempty"`
	TextInfo      string   `json:"textinfo,omitempty"`
	TextTemplate  string   `json:"texttemplate,omitempty"`
	Hole          float64  `json:"hole,omitempty"`
	Sort          *bool    `json:"sort,omitempty"`
	StackGroup    string   `json:"stackgroup,omitempty"`
	FillColor     string   `json:"fillcolor,omitempty"`
	BoxMean       bool     `json:"boxmean,omitempty"`
	Points        string   `json:"points,omitempty"`
	Box           *Toggle  `json:"box,omitempty"`
	MeanLine      *Toggle  `json:"meanline,omitempty"`
	ColorScale    any      `json:"colorscale,omitempty"`
	ShowScale     bool     `json:"showscale,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Line          *Line    `json:"line,omitempty"`
	CustomData    [][]any  `json:"customdata,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
}

type Toggle struct {
	Visible bool `json:"visible"`
}

// Marker styles bars, slices and points. Color is a single color or one per point.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Colors     []string  `json:"colors,omitempty"`
	Size       []float64 `json:"size,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	Opacity    float64   `json:"opacity,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	Line       *Line     `json:"line,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

type Layout struct {
	BarMode     string       `json:"barmode,omitempty"`
	ViolinMode  string       `json:"violinmode,omitempty"`
	BarGap      float64      `json:"bargap,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Margin struct {
	T int `json:"t"`
	R int `json:"r"`
	B int `json:"b"`
	L int `json:"l"`
}

type Axis struct {
	Title      *AxisTitle `json:"title,omitempty"`
	Range      []float64  `json:"range,omitempty"`
	TickAngle  int        `json:"tickangle,omitempty"`
	AutoMargin bool       `json:"automargin,omitempty"`
	NTicks     int        `json:"nticks,omitempty"`
}

type AxisTitle struct {
	Text string `json:"text"`
}

type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor,omitempty"`
	TraceOrder  string  `json:"traceorder,omitempty"`
}

// Shape is a reference line. A paper-referenced axis spans the whole plot.
type Shape struct {
	Type string  `json:"type"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	XRef string  `json:"xref,omitempty"`
	YRef string  `json:"yref,omitempty"`
	Line Line    `json:"line"`
}

type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
	Font      *Font   `json:"font,omitempty"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

func axisTitle(text string) *Axis {
	return &Axis{Title: &AxisTitle{Text: text}}
}

func boolPtr(v bool) *bool {
	return &v
}

func horizontalLegend() *Legend {
	return &Legend{Orientation: "h", X: 0.5, Y: 1.1, XAnchor: "center"}
}

func vline(x float64, color string) Shape {
	return Shape{Type: "line", X0: x, X1: x, Y0: 0, Y1: 1, YRef: "paper", Line: Line{Color: color, Dash: "dash", Width: 1.5}}
}

func hline(y float64, color string, width float64) Shape {
	return Shape{Type: "line", X0: 0, X1: 1, Y0: y, Y1: y, XRef: "paper", Line: Line{Color: color, Dash: "dash", Width: width}}
}
