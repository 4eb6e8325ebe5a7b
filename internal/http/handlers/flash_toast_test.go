package handlers

import (
	"net/http"
	"testing"

	"github.com/open-sspm/vulndash/internal/http/viewmodels"
)

func TestFlashToastRoundTrip(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/upload")
	setFlashToast(c, viewmodels.ToastViewData{Category: "SUCCESS", Title: " Dataset loaded ", Description: "3 issues"})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashToastCookieName {
		t.Fatalf("cookies = %v, want one %s cookie", cookies, flashToastCookieName)
	}

	next, _ := newTestContext(http.MethodGet, "http://example.com/")
	next.Request().AddCookie(cookies[0])
	toast := popFlashToast(next)
	if toast == nil {
		t.Fatal("popFlashToast() = nil")
	}
	if toast.Category != "success" || toast.Title != "Dataset loaded" || toast.Description != "3 issues" {
		t.Fatalf("toast = %+v", *toast)
	}
}

func TestFlashToastSkipsEmptyToast(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/upload")
	setFlashToast(c, viewmodels.ToastViewData{Category: "error"})

	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("cookies = %v, want none", cookies)
	}
}

func TestNormalizeToastCategory(t *testing.T) {
	for in, want := range map[string]string{"Warning": "warning", "error": "error", "": "info", "loud": "info"} {
		if got := normalizeToastCategory(in); got != want {
			t.Fatalf("normalizeToastCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
