package views

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/open-sspm/vulndash/internal/aggregate"
)

const mttrPlaceholder = "—"

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatCount abbreviates counts of a thousand or more, e.g. 1234 becomes "1.2k".
func FormatCount(v int) string {
	if v >= 1000 {
		return strconv.FormatFloat(float64(v)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(v)
}

// FormatMTTR renders a mean resolution time in days with one decimal.
func FormatMTTR(v aggregate.Optional) string {
	if !v.Valid {
		return mttrPlaceholder
	}
	return strconv.FormatFloat(v.Value, 'f', 1, 64)
}

func QueryEscape(v string) string {
	return url.QueryEscape(v)
}

// DashboardURL is the page URL carrying an encoded filter query.
func DashboardURL(query string) string {
	if query = strings.TrimSpace(query); query == "" {
		return "/"
	}
	return "/?" + query
}

func FilterToggleURL(kind string) string {
	return "/filters/" + url.PathEscape(strings.TrimSpace(kind)) + "/toggle"
}

func ChartSVGURL(id string) string {
	return "/charts/" + url.PathEscape(id) + "/svg"
}

func chipClass(active bool) string {
	if active {
		return "chip active"
	}
	return "chip"
}

func kpiClass(tone string) string {
	if tone = strings.TrimSpace(tone); tone == "" {
		return "kpi"
	}
	return "kpi kpi-" + tone
}

func FormatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatBytes renders a byte size in the largest whole binary unit.
func FormatBytes(v int64) string {
	switch {
	case v >= 1<<20 && v%(1<<20) == 0:
		return FormatInt64(v>>20) + " MiB"
	case v >= 1<<10 && v%(1<<10) == 0:
		return FormatInt64(v>>10) + " KiB"
	default:
		return FormatInt64(v) + " bytes"
	}
}
