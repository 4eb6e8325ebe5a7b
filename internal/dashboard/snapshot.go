package dashboard

import (
	"time"

	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/findings"
)

// Snapshot is a point-in-time copy of the dashboard. Callers may keep it after the
// dashboard changes.
type Snapshot struct {
	Loaded    bool
	Source    string
	LoadedAt  time.Time
	Dataset   findings.DatasetSummary
	Orgs      []string
	ScanTypes []string
	State     filter.State
	Filtered  int
	Summary   aggregate.Summary
	Slots     []chart.Slot
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Snapshot{
		Loaded:    d.loaded,
		Source:    d.source,
		LoadedAt:  d.loadedAt,
		Dataset:   d.dataset,
		Orgs:      append([]string(nil), d.orgs...),
		ScanTypes: append([]string(nil), d.scans...),
		State:     d.state,
		Filtered:  len(d.filtered),
		Summary:   d.summary,
		Slots:     append([]chart.Slot(nil), d.slots...),
	}
}

// Filtered returns a copy of the records matching the current selection.
func (d *Dashboard) Filtered() []findings.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]findings.Record(nil), d.filtered...)
}

// Slot returns the current slot for id.
func (s Snapshot) Slot(id chart.ID) (chart.Slot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return chart.Slot{}, false
}
