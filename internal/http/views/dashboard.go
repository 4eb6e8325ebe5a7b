package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"
	"github.com/open-sspm/vulndash/internal/http/viewmodels"
)

const DashboardBodyID = "dashboard-body"

func DashboardPage(data viewmodels.DashboardViewData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.component(templ.WithChildren(ctx, DashboardBody(data)), Layout(data.Layout))
	})
}

// DashboardBody is the part of the page replaced after every filter change.
func DashboardBody(data viewmodels.DashboardViewData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<div id="` + DashboardBodyID + `">`)
		if !data.Loaded {
			h.component(ctx, UploadPanel(data.Upload))
			h.raw(`</div>`)
			return
		}
		h.component(ctx, datasetHeader(data.Header, data.Filtered))
		h.component(ctx, filterBar(data))
		h.component(ctx, kpiTiles(data.KPIs))
		h.raw(`<section class="chart-grid" id="dashboard">`)
		for _, slot := range data.Charts {
			h.component(ctx, ChartSlot(slot))
		}
		h.raw(`</section>`)
		h.component(ctx, uploadInline(data.Upload))
		h.raw(`</div>`)
	})
}

func datasetHeader(header viewmodels.DatasetHeaderViewData, filtered int) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div id="data-summary" class="data-summary">`)
		badge(h, FormatInt(header.Issues)+" issues")
		badge(h, FormatInt(header.Orgs)+" orgs")
		badge(h, FormatInt(header.Projects)+" projects")
		if header.FirstMonth != "" {
			badge(h, header.FirstMonth+" – "+header.LastMonth)
		}
		h.raw(`<span class="filtered-count">Showing `)
		h.text(FormatInt(filtered))
		h.raw(` of `)
		h.text(FormatInt(header.Issues))
		h.raw(`</span>`)
		if header.Source != "" {
			h.raw(`<span class="filtered-count" title="Loaded `)
			h.text(header.LoadedAt)
			h.raw(`">Source: `)
			h.text(header.Source)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	})
}

func badge(h *html, text string) {
	h.raw(`<span class="badge">`)
	h.text(text)
	h.raw(`</span>`)
}

func filterBar(data viewmodels.DashboardViewData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section class="filters">`)
		h.component(ctx, chipGroup("filter-org", "Organization", "org", data.OrgChips))
		h.component(ctx, chipGroup("filter-scan", "Scan type", "scan", data.ScanChips))
		h.raw(`<form method="post" action="/filters/reset" hx-post="/filters/reset"`)
		h.raw(` hx-target="#` + DashboardBodyID + `" hx-swap="outerHTML">`)
		h.raw(`<button type="submit" id="reset-filters" class="btn">Reset filters</button></form>`)
		if data.FilterQuery != "" {
			h.raw(`<a class="card-action"`)
			h.attr("href", DashboardURL(data.FilterQuery))
			h.raw(` hx-boost="false">Link to this view</a>`)
		}
		h.raw(`</section>`)
	})
}

// chipGroup renders one filter as a form whose buttons submit their token. The
// form works without scripts; with htmx it swaps the dashboard body in place.
func chipGroup(id, label, kind string, chips []viewmodels.FilterChip) templ.Component {
	return component(func(_ context.Context, h *html) {
		action := FilterToggleURL(kind)
		h.raw(`<div class="filter-group"><span class="filter-label">`)
		h.text(label)
		h.raw(`</span><form method="post"`)
		h.attr("id", id)
		h.raw(` class="chips"`)
		h.attr("action", action)
		h.attr("hx-post", action)
		h.raw(` hx-target="#` + DashboardBodyID + `" hx-swap="outerHTML">`)
		for _, chip := range chips {
			h.raw(`<button type="submit" name="value"`)
			h.attr("class", chipClass(chip.Active))
			h.attr("value", chip.Value)
			h.attr("data-type", chip.Kind)
			h.attr("data-value", chip.Value)
			if chip.Active {
				h.raw(` aria-pressed="true">`)
			} else {
				h.raw(` aria-pressed="false">`)
			}
			h.text(chip.Label)
			h.raw(`</button>`)
		}
		h.raw(`</form></div>`)
	})
}

func kpiTiles(items []viewmodels.KPIItem) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<section class="kpis">`)
		for _, item := range items {
			h.raw(`<div`)
			h.attr("class", kpiClass(item.Tone))
			h.raw(`><span class="kpi-label">`)
			h.text(item.Label)
			h.raw(`</span><span class="kpi-value"`)
			h.attr("id", item.ID)
			h.raw(`>`)
			h.text(item.Value)
			h.raw(`</span></div>`)
		}
		h.raw(`</section>`)
	})
}

// ChartSlot renders one chart container. Slots with a figure embed it as JSON for
// the page script; empty slots show their placeholder text instead.
func ChartSlot(slot viewmodels.ChartSlotViewData) templ.Component {
	return component(func(_ context.Context, h *html) {
		class := "card"
		if slot.Wide {
			class += " card-wide"
		}
		h.raw(`<article`)
		h.attr("class", class)
		h.attr("data-chart-slot", slot.ID)
		h.raw(`><header class="card-header"><h2>`)
		h.text(slot.Title)
		h.raw(`</h2>`)
		if !slot.IsEmpty() && slot.SVGHref != "" {
			h.raw(`<a class="card-action" hx-boost="false"`)
			h.attr("href", slot.SVGHref)
			h.raw(`>SVG</a>`)
		}
		h.raw(`</header><div class="chart"`)
		h.attr("id", slot.ID)
		h.raw(`>`)
		if slot.IsEmpty() {
			h.raw(`<div class="chart-empty">`)
			h.text(slot.EmptyText)
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
		if !slot.IsEmpty() {
			h.raw(`<script type="application/json"`)
			h.attr("data-chart", slot.ID)
			h.raw(`>`)
			h.raw(scriptSafe(slot.FigureJSON))
			h.raw(`</script>`)
		}
		h.raw(`</article>`)
	})
}

func scriptSafe(payload string) string {
	return strings.ReplaceAll(payload, "</", `<\/`)
}

// UploadPanel is shown when no dataset could be loaded at startup.
func UploadPanel(upload viewmodels.UploadViewData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section id="upload-fallback" class="upload"><h2>Load a dataset</h2>`)
		h.raw(`<p>The dataset could not be loaded automatically`)
		if upload.SourceHint != "" {
			h.raw(` from <code>`)
			h.text(upload.SourceHint)
			h.raw(`</code>`)
		}
		h.raw(`. Choose a CSV export to continue.</p>`)
		h.component(ctx, uploadForm(upload))
		h.raw(`</section>`)
	})
}

func uploadInline(upload viewmodels.UploadViewData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<section class="upload-inline"><span>Replace dataset</span>`)
		h.component(ctx, uploadForm(upload))
		h.raw(`</section>`)
	})
}

func uploadForm(upload viewmodels.UploadViewData) templ.Component {
	return component(func(_ context.Context, h *html) {
		if upload.Error != "" {
			h.raw(`<p class="upload-error" role="alert">`)
			h.text(upload.Error)
			h.raw(`</p>`)
		}
		h.raw(`<form method="post" action="/upload" enctype="multipart/form-data" hx-boost="false">`)
		h.raw(`<input type="file" id="csv-upload" name="file" accept=".csv,text/csv" required>`)
		h.raw(` <button type="submit" class="btn">Upload</button>`)
		if upload.MaxUploadBytes > 0 {
			h.raw(` <small class="filtered-count">Up to `)
			h.text(FormatBytes(upload.MaxUploadBytes))
			h.raw(`</small>`)
		}
		h.raw(`</form>`)
	})
}
