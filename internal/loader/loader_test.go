package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/open-sspm/vulndash/internal/findings"
)

const sampleCSV = "issue_id,org_name,project_name,scan_type,severity,status,resolution_days\n" +
	"1,A,web,sca,critical,open,\n" +
	"2,A,api,sast,low,fixed,5\n"

func TestLoad_FetchesOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	records, err := New(time.Second).Load(context.Background(), srv.URL+"/data.csv")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
}

func TestLoad_NonSuccessStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(time.Second).Load(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Load() error = %v, want ErrUnavailable", err)
	}
}

func TestLoad_TimeoutIsUnavailable(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	_, err := New(20*time.Millisecond).Load(context.Background(), srv.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Load() error = %v, want ErrUnavailable", err)
	}
}

func TestLoad_ReadsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	records, err := New(0).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if records[1].ResolutionDays == nil || *records[1].ResolutionDays != 5 {
		t.Fatalf("ResolutionDays = %v, want 5", records[1].ResolutionDays)
	}
}

func TestLoad_MissingFileIsUnavailable(t *testing.T) {
	_, err := New(0).Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Load() error = %v, want ErrUnavailable", err)
	}
}

func TestParse_MalformedUpload(t *testing.T) {
	_, err := Parse(strings.NewReader("issue_id,org_name\n\"1,A\n"))
	if !errors.Is(err, findings.ErrParse) {
		t.Fatalf("Parse() error = %v, want ErrParse", err)
	}
}

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/x.csv": true,
		" HTTP://example.com ":      true,
		"data/x.csv":                false,
		"file:///tmp/x.csv":         false,
	}
	for in, want := range cases {
		if got := IsRemote(in); got != want {
			t.Fatalf("IsRemote(%q) = %v, want %v", in, got, want)
		}
	}
}
