package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/http/viewmodels"
	"github.com/open-sspm/vulndash/internal/http/views"
	"github.com/open-sspm/vulndash/internal/loader"
)

const uploadField = "file"

// HandleUpload replaces the dataset with an uploaded CSV export. A document that
// fails to parse leaves the current dataset untouched.
func (h *Handlers) HandleUpload(c *echo.Context) error {
	req := c.Request()
	if h.Cfg.MaxUploadBytes > 0 {
		req.Body = http.MaxBytesReader(c.Response(), req.Body, h.Cfg.MaxUploadBytes)
	}

	file, header, err := req.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return h.renderDashboard(c, http.StatusRequestEntityTooLarge,
				"The file is larger than "+views.FormatBytes(tooLarge.Limit)+".")
		}
		return h.renderDashboard(c, http.StatusBadRequest, "Choose a CSV file to upload.")
	}
	defer file.Close()

	records, err := loader.Parse(file)
	if err != nil {
		c.Logger().Warn("upload rejected", "file", header.Filename, "error", err)
		return h.renderDashboard(c, http.StatusUnprocessableEntity, uploadErrorMessage(err))
	}

	name := filepath.Base(strings.TrimSpace(header.Filename))
	if name == "" || name == "." {
		name = "upload.csv"
	}
	h.Dashboard.Load(name, records)
	setFlashToast(c, viewmodels.ToastViewData{
		Category:    "success",
		Title:       "Dataset loaded",
		Description: fmt.Sprintf("%d issues from %s", len(records), name),
	})
	if isHX(c) {
		setHXRedirect(c, "/")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func uploadErrorMessage(err error) string {
	if errors.Is(err, findings.ErrParse) {
		return "Failed to parse CSV: " + strings.TrimPrefix(err.Error(), findings.ErrParse.Error()+": ")
	}
	return "Failed to read the uploaded file."
}
