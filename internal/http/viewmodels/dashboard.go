package viewmodels

type DashboardViewData struct {
	Layout      LayoutData
	Loaded      bool
	Header      DatasetHeaderViewData
	OrgChips    []FilterChip
	ScanChips   []FilterChip
	KPIs        []KPIItem
	Charts      []ChartSlotViewData
	Filtered    int
	FilterQuery string
	Upload      UploadViewData
}

// DatasetHeaderViewData feeds the summary badges above the filters.
type DatasetHeaderViewData struct {
	Source     string
	Issues     int
	Orgs       int
	Projects   int
	FirstMonth string
	LastMonth  string
	LoadedAt   string
}

type FilterChip struct {
	Kind   string
	Value  string
	Label  string
	Active bool
}

type KPIItem struct {
	ID    string
	Label string
	Value string
	Tone  string
}

type ChartSlotViewData struct {
	ID         string
	Title      string
	FigureJSON string
	EmptyText  string
	SVGHref    string
	Wide       bool
}

func (s ChartSlotViewData) IsEmpty() bool {
	return s.FigureJSON == ""
}

type UploadViewData struct {
	Error          string
	MaxUploadBytes int64
	SourceHint     string
}
