package findings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/open-sspm/vulndash/internal/normalize"
)

// ErrParse marks a document that could not be read as delimited text.
var ErrParse = errors.New("parse findings csv")

// Column names of the findings export.
const (
	ColIssueID         = "issue_id"
	ColOrgName         = "org_name"
	ColProjectName     = "project_name"
	ColScanType        = "scan_type"
	ColSeverity        = "severity"
	ColRiskScore       = "risk_score"
	ColCVSSScore       = "cvss_score"
	ColPriorityScore   = "priority_score"
	ColIssueType       = "issue_type"
	ColExploitMaturity = "exploit_maturity"
	ColCWEID           = "cwe_id"
	ColIsFixable       = "is_fixable"
	ColStatus          = "status"
	ColDiscoveredDate  = "discovered_date"
	ColIntroducedDate  = "introduced_date"
	ColResolvedDate    = "resolved_date"
	ColResolutionDays  = "resolution_days"
	ColLanguage        = "language"
	ColTitle           = "title"
)

// fixableToken is the only value of is_fixable that means true.
const fixableToken = "True"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRow converts one raw row into a Record. Bad numeric fields coerce to 0 and bad
// dates to the zero time; nothing here returns an error.
func ParseRow(row map[string]string) Record {
	r := Record{
		ID:              normalize.Trim(row[ColIssueID]),
		Org:             row[ColOrgName],
		Project:         row[ColProjectName],
		ScanType:        row[ColScanType],
		Severity:        Severity(normalize.Lower(row[ColSeverity])),
		RiskScore:       parseFloat(row[ColRiskScore]),
		PriorityScore:   parseInt(row[ColPriorityScore]),
		CVSS:            parseFloat(row[ColCVSSScore]),
		IssueType:       row[ColIssueType],
		ExploitMaturity: normalize.Trim(row[ColExploitMaturity]),
		Fixable:         row[ColIsFixable] == fixableToken,
		Status:          row[ColStatus],
		Discovered:      parseDate(row[ColDiscoveredDate]),
		Introduced:      parseDate(row[ColIntroducedDate]),
		CWE:             normalize.Trim(row[ColCWEID]),
		Language:        row[ColLanguage],
		Title:           row[ColTitle],
	}
	if !normalize.IsBlank(row[ColResolvedDate]) {
		resolved := parseDate(row[ColResolvedDate])
		r.Resolved = &resolved
	}
	if r.Status == StatusFixed {
		if raw := normalize.Trim(row[ColResolutionDays]); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) {
				r.ResolutionDays = &v
			}
		}
	}
	return r
}

// ParseRows parses every row and silently drops rows without an issue id.
func ParseRows(rows []map[string]string) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if normalize.IsBlank(row[ColIssueID]) {
			continue
		}
		out = append(out, ParseRow(row))
	}
	return out
}

// ParseCSV reads a header row followed by records. Empty lines are skipped and short
// rows are padded with empty fields.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("%w: header: %w", ErrParse, err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = normalize.Header(h)
	}

	rows := make([]map[string]string, 0, 256)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if isEmptyLine(fields) {
			continue
		}
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(fields) {
				row[col] = fields[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return ParseRows(rows), nil
}

func isEmptyLine(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func parseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	// "7.9" style values keep their integer part.
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
