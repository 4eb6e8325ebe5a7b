package views

import (
	"context"

	"github.com/a-h/templ"
	"github.com/open-sspm/vulndash/internal/http/viewmodels"
)

const appTitle = "Snyk Vulnerability Dashboard"

// Layout renders the page shell around the children carried by ctx.
func Layout(data viewmodels.LayoutData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		title := appTitle
		if data.Title != "" {
			title = data.Title + " · " + appTitle
		}
		h.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><style>`)
		h.raw(pageStyle)
		h.raw(`</style>`)
		h.raw(`<script src="` + plotlyScriptURL + `" defer></script>`)
		h.raw(`<script src="` + htmxScriptURL + `" defer></script>`)
		h.raw(`</head><body hx-boost="true">`)
		h.raw(`<header class="app-header"><h1>` + appTitle + `</h1></header>`)
		h.raw(`<main>`)
		h.component(ctx, templ.GetChildren(ctx))
		h.raw(`</main>`)
		if data.Toast != nil {
			h.component(ctx, Toast(*data.Toast))
		}
		h.raw(`<script>`)
		h.raw(chartScript)
		h.raw(`</script></body></html>`)
	})
}

func Toast(toast viewmodels.ToastViewData) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div`)
		h.attr("class", "toast toast-"+toast.Category)
		h.raw(` role="status"><strong>`)
		h.text(toast.Title)
		h.raw(`</strong>`)
		if toast.Description != "" {
			h.raw(`<p>`)
			h.text(toast.Description)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}
