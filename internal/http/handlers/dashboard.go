package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/open-sspm/vulndash/internal/filter"
	"github.com/open-sspm/vulndash/internal/http/views"
)

// HandleDashboard renders the dashboard page. A request carrying org or scan query
// parameters replaces the current selection first, so shared links reproduce a view.
func (h *Handlers) HandleDashboard(c *echo.Context) error {
	if c.Request().URL.Path != "/" {
		return RenderNotFound(c)
	}
	query := c.Request().URL.Query()
	if query.Has(string(filter.KindOrg)) || query.Has(string(filter.KindScan)) {
		h.Dashboard.SetState(filter.FromQuery(query))
	}
	return h.renderDashboard(c, http.StatusOK, "")
}

// renderDashboard writes the dashboard body for htmx swaps and the full page
// otherwise. uploadErr is shown next to the upload form.
func (h *Handlers) renderDashboard(c *echo.Context, status int, uploadErr string) error {
	addVary(c, "HX-Request", "HX-Target")

	data, err := h.dashboardViewData(h.LayoutData(c, "Dashboard"), h.Dashboard.Snapshot())
	if err != nil {
		return h.RenderError(c, err)
	}
	data.Upload.Error = uploadErr

	if isHX(c) && isHXTarget(c, views.DashboardBodyID) {
		return h.RenderComponentStatus(c, status, views.DashboardBody(data))
	}
	return h.RenderComponentStatus(c, status, views.DashboardPage(data))
}
