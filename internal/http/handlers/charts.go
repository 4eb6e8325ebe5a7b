package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/open-sspm/vulndash/internal/aggregate"
	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/findings"
)

type chartsResponse struct {
	Loaded   bool                    `json:"loaded"`
	Source   string                  `json:"source,omitempty"`
	Dataset  findings.DatasetSummary `json:"dataset"`
	Filters  filtersResponse         `json:"filters"`
	Filtered int                     `json:"filtered"`
	Summary  aggregate.Summary       `json:"summary"`
	Charts   []chart.Slot            `json:"charts"`
}

type filtersResponse struct {
	Org  []string `json:"org"`
	Scan []string `json:"scan"`
}

// HandleChartsAPI returns the summary counters and every chart slot as JSON.
func (h *Handlers) HandleChartsAPI(c *echo.Context) error {
	snap := h.Dashboard.Snapshot()
	return c.JSON(http.StatusOK, chartsResponse{
		Loaded:   snap.Loaded,
		Source:   snap.Source,
		Dataset:  snap.Dataset,
		Filters:  filtersResponse{Org: snap.State.Org.Values(), Scan: snap.State.Scan.Values()},
		Filtered: snap.Filtered,
		Summary:  snap.Summary,
		Charts:   snap.Slots,
	})
}

// HandleChartSVG renders one chart of the current selection as an SVG image.
func (h *Handlers) HandleChartSVG(c *echo.Context) error {
	id := chart.ID(c.Param("id"))
	if !chart.Known(id) {
		return RenderNotFound(c)
	}
	slot, ok := h.Dashboard.Snapshot().Slot(id)
	if !ok || slot.IsEmpty() {
		return c.String(http.StatusNotFound, chart.EmptyMessage(id))
	}

	var buf bytes.Buffer
	if err := chart.WriteSVG(&buf, slot.Title, *slot.Figure); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return c.String(http.StatusNotFound, chart.EmptyMessage(id))
		}
		return h.RenderError(c, err)
	}

	header := c.Response().Header()
	header.Set("Content-Type", "image/svg+xml")
	header.Set("Cache-Control", "no-store")
	c.Response().WriteHeader(http.StatusOK)
	_, err := c.Response().Write(buf.Bytes())
	return err
}
