// Package loader reads the initial dataset from a URL or a local file.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/metrics"
)

// ErrUnavailable means the source could not be read. Callers fall back to an
// upload.
var ErrUnavailable = errors.New("dataset unavailable")

const defaultTimeout = 15 * time.Second

type Loader struct {
	Client  *http.Client
	Timeout time.Duration
}

// New returns a Loader whose fetches give up after timeout.
func New(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{Client: &http.Client{}, Timeout: timeout}
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load reads and parses source. Unreachable sources wrap ErrUnavailable and
// malformed documents wrap findings.ErrParse.
func (l *Loader) Load(ctx context.Context, source string) ([]findings.Record, error) {
	source = strings.TrimSpace(source)
	kind := metrics.SourceFile
	if IsRemote(source) {
		kind = metrics.SourceFetch
	}

	var (
		records []findings.Record
		err     error
	)
	if kind == metrics.SourceFetch {
		records, err = l.fetch(ctx, source)
	} else {
		records, err = readFile(source)
	}
	metrics.LoadsTotal.WithLabelValues(kind, loadStatus(err)).Inc()
	return records, err
}

func (l *Loader) fetch(ctx context.Context, url string) ([]findings.Record, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: fetch %s: HTTP %d", ErrUnavailable, url, resp.StatusCode)
	}
	return findings.ParseCSV(resp.Body)
}

func readFile(path string) ([]findings.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return findings.ParseCSV(f)
}

// Parse reads an uploaded document.
func Parse(r io.Reader) ([]findings.Record, error) {
	records, err := findings.ParseCSV(r)
	metrics.LoadsTotal.WithLabelValues(metrics.SourceUpload, loadStatus(err)).Inc()
	return records, err
}

func loadStatus(err error) string {
	switch {
	case err == nil:
		return metrics.LoadStatusOK
	case errors.Is(err, findings.ErrParse):
		return metrics.LoadStatusParseError
	default:
		return metrics.LoadStatusUnavailable
	}
}
