package handlers

import (
	"encoding/json"
	"time"

	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/dashboard"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/http/viewmodels"
	"github.com/open-sspm/vulndash/internal/http/views"
)

// wideCharts span the full grid row.
var wideCharts = map[chart.ID]bool{
	chart.Heatmap:     true,
	chart.Trend:       true,
	chart.CWE:         true,
	chart.ProjectRisk: true,
}

func (h *Handlers) dashboardViewData(layout viewmodels.LayoutData, snap dashboard.Snapshot) (viewmodels.DashboardViewData, error) {
	data := viewmodels.DashboardViewData{
		Layout:   layout,
		Loaded:   snap.Loaded,
		Filtered: snap.Filtered,
		Upload: viewmodels.UploadViewData{
			MaxUploadBytes: h.Cfg.MaxUploadBytes,
			SourceHint:     h.Cfg.DataSource,
		},
	}
	if !snap.Loaded {
		return data, nil
	}

	data.Header = viewmodels.DatasetHeaderViewData{
		Source:     snap.Source,
		Issues:     snap.Dataset.Issues,
		Orgs:       snap.Dataset.Orgs,
		Projects:   snap.Dataset.Projects,
		FirstMonth: snap.Dataset.FirstMonth,
		LastMonth:  snap.Dataset.LastMonth,
	}
	if !snap.LoadedAt.IsZero() {
		data.Header.LoadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	data.OrgChips = filterChips(filter.KindOrg, snap.Orgs, snap.State.Org, func(v string) string { return v })
	data.ScanChips = filterChips(filter.KindScan, snap.ScanTypes, snap.State.Scan, findings.ScanTypeLabel)
	data.FilterQuery = snap.State.Query().Encode()
	data.KPIs = []viewmodels.KPIItem{
		{ID: "kpi-total", Label: "Total issues", Value: views.FormatCount(snap.Summary.Total)},
		{ID: "kpi-critical", Label: "Open critical", Value: views.FormatInt(snap.Summary.OpenCritical), Tone: "critical"},
		{ID: "kpi-high", Label: "Open high", Value: views.FormatInt(snap.Summary.OpenHigh), Tone: "high"},
		{ID: "kpi-fixed", Label: "Fixed", Value: views.FormatCount(snap.Summary.Fixed), Tone: "fixed"},
		{ID: "kpi-mttr", Label: "Mean MTTR (days)", Value: views.FormatMTTR(snap.Summary.MeanMTTR)},
	}

	data.Charts = make([]viewmodels.ChartSlotViewData, 0, len(snap.Slots))
	for _, slot := range snap.Slots {
		item := viewmodels.ChartSlotViewData{
			ID:    string(slot.ID),
			Title: slot.Title,
			Wide:  wideCharts[slot.ID],
		}
		if slot.IsEmpty() {
			item.EmptyText = slot.Empty
		} else {
			payload, err := json.Marshal(slot.Figure)
			if err != nil {
				return viewmodels.DashboardViewData{}, err
			}
			item.FigureJSON = string(payload)
			item.SVGHref = views.ChartSVGURL(string(slot.ID))
		}
		data.Charts = append(data.Charts, item)
	}
	return data, nil
}

// filterChips lists the sentinel chip first, then one chip per option.
func filterChips(kind filter.Kind, options []string, sel filter.Selection, label func(string) string) []viewmodels.FilterChip {
	chips := make([]viewmodels.FilterChip, 0, len(options)+1)
	chips = append(chips, viewmodels.FilterChip{
		Kind:   string(kind),
		Value:  filter.AllSentinel,
		Label:  "All",
		Active: sel.Has(filter.AllSentinel),
	})
	for _, option := range options {
		chips = append(chips, viewmodels.FilterChip{
			Kind:   string(kind),
			Value:  option,
			Label:  label(option),
			Active: sel.Has(option),
		})
	}
	return chips
}
