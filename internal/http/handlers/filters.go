package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/http/views"
)

// HandleFilterToggle flips one chip of the org or scan filter.
func (h *Handlers) HandleFilterToggle(c *echo.Context) error {
	kind, err := filter.ParseKind(c.Param("kind"))
	if err != nil {
		return RenderNotFound(c)
	}
	token := c.FormValue("value")
	if token == "" {
		return c.String(http.StatusBadRequest, "missing filter value")
	}
	if err := h.Dashboard.Toggle(kind, token); err != nil {
		if errors.Is(err, filter.ErrUnknownKind) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	return h.afterFilterChange(c)
}

// HandleFilterReset restores both filters to all-selected.
func (h *Handlers) HandleFilterReset(c *echo.Context) error {
	h.Dashboard.Reset()
	return h.afterFilterChange(c)
}

func (h *Handlers) afterFilterChange(c *echo.Context) error {
	if isHX(c) {
		return h.renderDashboard(c, http.StatusOK, "")
	}
	snap := h.Dashboard.Snapshot()
	return c.Redirect(http.StatusSeeOther, views.DashboardURL(snap.State.Query().Encode()))
}
