// Package dashboard owns the loaded dataset and the filter selection, and re-renders
// every chart whenever either changes.
package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/metrics"
)

// SummaryRenderer is implemented by renderers that also show the headline counters.
// RenderAll calls it before any chart.
type SummaryRenderer interface {
	RenderSummary(s aggregate.Summary)
}

// Dashboard is safe for concurrent use. Every mutation recomputes the filtered
// records and all chart slots before returning.
type Dashboard struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	loaded   bool
	source   string
	loadedAt time.Time
	records  []findings.Record
	dataset  findings.DatasetSummary
	orgs     []string
	scans    []string

	state    filter.State
	filtered []findings.Record
	summary  aggregate.Summary
	slots    []chart.Slot
}

func New(logger *slog.Logger) *Dashboard {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{logger: logger, now: time.Now}
	d.recomputeLocked()
	return d
}

// Load replaces the dataset, resets both filters and renders.
func (d *Dashboard) Load(source string, records []findings.Record) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.records = append([]findings.Record(nil), records...)
	d.loaded = true
	d.source = source
	d.loadedAt = d.now()
	d.dataset = findings.Summarize(d.records)
	d.orgs = findings.Orgs(d.records)
	d.scans = findings.ScanTypes(d.records)
	d.state.Reset()
	metrics.DatasetRecords.Set(float64(len(d.records)))

	d.recomputeLocked()
	d.logger.Info("dataset loaded",
		"source", source,
		"records", d.dataset.Issues,
		"orgs", d.dataset.Orgs,
		"projects", d.dataset.Projects,
	)
}

// Toggle flips token in the filter named by kind.
func (d *Dashboard) Toggle(kind filter.Kind, token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.state.Toggle(kind, token); err != nil {
		return err
	}
	metrics.FilterTogglesTotal.WithLabelValues(string(kind)).Inc()
	d.recomputeLocked()
	d.logger.Debug("filter toggled", "kind", kind, "token", token, "filtered", len(d.filtered))
	return nil
}

// Reset restores both filters to all-selected.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.Reset()
	metrics.FilterTogglesTotal.WithLabelValues("reset").Inc()
	d.recomputeLocked()
}

// SetState replaces the whole filter selection, as when following a shared link.
func (d *Dashboard) SetState(state filter.State) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Org.Equal(state.Org) && d.state.Scan.Equal(state.Scan) {
		return
	}
	d.state = state
	d.recomputeLocked()
}

// RenderAll forwards the summary counters and then every chart, in chart.Order, to r.
func (d *Dashboard) RenderAll(r chart.Renderer) {
	d.mu.Lock()
	summary := d.summary
	slots := d.slots
	d.mu.Unlock()

	if sr, ok := r.(SummaryRenderer); ok {
		sr.RenderSummary(summary)
	}
	for _, s := range slots {
		if s.IsEmpty() {
			r.RenderEmpty(s.ID, s.Empty)
			continue
		}
		r.Render(s.ID, *s.Figure)
	}
}

func (d *Dashboard) recomputeLocked() {
	start := time.Now()

	d.filtered = d.state.Apply(d.records)
	d.summary = aggregate.Summarize(d.filtered)

	collector := chart.NewCollector()
	for _, id := range chart.Order {
		if !chart.Draw(collector, id, d.filtered) {
			metrics.EmptyChartsTotal.WithLabelValues(string(id)).Inc()
		}
	}
	d.slots = collector.Slots()

	metrics.FilteredRecords.Set(float64(len(d.filtered)))
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
}
