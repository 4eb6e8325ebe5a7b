package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-sspm/vulndash/internal/chart"
	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/loader"
)

const sampleCSV = `issue_id,org_name,project_name,scan_type,severity,cvss_score,issue_type,status,discovered_date,resolution_days,language,cwe_id,title,exploit_maturity,is_fixable
1,A,web,sca,critical,9.1,vuln,open,2024-01-05,,js,CWE-79,XSS,mature,True
2,A,web,sast,low,0,code,fixed,2024-02-10,5,go,,,,False
3,B,api,sca,high,7.4,vuln,open,2024-03-01,,go,CWE-89,SQLi,proof-of-concept,True
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func sampleRecords(t *testing.T) []findings.Record {
	t.Helper()
	records, err := findings.ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	return records
}

func TestDatasetFlagsState(t *testing.T) {
	flags := datasetFlags{orgs: []string{"A", "B", "A"}, scans: []string{"sca"}}
	st, err := flags.state()
	if err != nil {
		t.Fatalf("state() error = %v", err)
	}
	if got := st.Org.Values(); len(got) != 1 || got[0] != "B" {
		t.Fatalf("org = %v, want [B]", got)
	}
	if got := st.Scan.Values(); len(got) != 1 || got[0] != "sca" {
		t.Fatalf("scan = %v, want [sca]", got)
	}
}

func TestDatasetFlagsResolveSource(t *testing.T) {
	cfg := config.Config{DataSource: "default.csv"}
	if got := (datasetFlags{}).resolveSource(cfg); got != "default.csv" {
		t.Fatalf("resolveSource() = %q, want default.csv", got)
	}
	if got := (datasetFlags{source: " other.csv "}).resolveSource(cfg); got != "other.csv" {
		t.Fatalf("resolveSource() = %q, want other.csv", got)
	}
}

func TestLoadDatasetWrapsUnavailable(t *testing.T) {
	_, err := loadDataset(context.Background(), config.Config{}, filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, loader.ErrUnavailable) {
		t.Fatalf("loadDataset() error = %v, want ErrUnavailable", err)
	}
}

func TestBuildSummaryReport(t *testing.T) {
	records, err := loadDataset(context.Background(), config.Config{}, writeSample(t))
	if err != nil {
		t.Fatalf("loadDataset() error = %v", err)
	}
	report, err := buildSummaryReport("dataset.csv", records, datasetFlags{orgs: []string{"A"}})
	if err != nil {
		t.Fatalf("buildSummaryReport() error = %v", err)
	}
	if report.Dataset.Issues != 3 || report.Filtered != 2 {
		t.Fatalf("report = %+v, want 3 issues with 2 selected", report)
	}
	if report.Summary.OpenCritical != 1 || report.Summary.Fixed != 1 {
		t.Fatalf("summary = %+v, want 1 open critical and 1 fixed", report.Summary)
	}

	var buf bytes.Buffer
	if err := writeSummaryJSON(&buf, report); err != nil {
		t.Fatalf("writeSummaryJSON() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	summary, _ := decoded["summary"].(map[string]any)
	if summary["mean_mttr_days"] != float64(5) {
		t.Fatalf("mean_mttr_days = %v, want 5", summary["mean_mttr_days"])
	}

	buf.Reset()
	if err := writeSummaryText(&buf, report); err != nil {
		t.Fatalf("writeSummaryText() error = %v", err)
	}
	for _, want := range []string{"selection:     2 issues", "open critical: 1", "mean MTTR:     5.0 days", "(2024-01 to 2024-03)"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("text output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestIsTerminalFalseForBuffers(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Fatal("isTerminal(buffer) = true")
	}
}

func TestExportChartsWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	result, err := exportCharts(context.Background(), dir, "dataset.csv", sampleRecords(t), datasetFlags{})
	if err != nil {
		t.Fatalf("exportCharts() error = %v", err)
	}
	if result.Drawn+result.Empty != len(chart.Order) {
		t.Fatalf("result = %+v, want %d slots", result, len(chart.Order))
	}
	if result.Drawn == 0 {
		t.Fatalf("result = %+v, want drawn charts", result)
	}

	svg, err := os.ReadFile(filepath.Join(dir, string(chart.SeverityPie)+".svg"))
	if err != nil {
		t.Fatalf("read pie svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("pie file is not an svg document")
	}

	raw, err := os.ReadFile(filepath.Join(dir, "charts.json"))
	if err != nil {
		t.Fatalf("read charts.json: %v", err)
	}
	var manifest struct {
		Filtered int `json:"filtered"`
		Charts   []struct {
			ID string `json:"id"`
		} `json:"charts"`
	}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("decode charts.json: %v", err)
	}
	if manifest.Filtered != 3 || len(manifest.Charts) != len(chart.Order) {
		t.Fatalf("manifest = %+v, want 3 records and %d charts", manifest, len(chart.Order))
	}
}

func TestExportChartsSkipsEmptySelections(t *testing.T) {
	dir := t.TempDir()

	result, err := exportCharts(context.Background(), dir, "dataset.csv", sampleRecords(t), datasetFlags{orgs: []string{"nobody"}})
	if err != nil {
		t.Fatalf("exportCharts() error = %v", err)
	}
	if result.Drawn != 0 || result.Empty != len(chart.Order) {
		t.Fatalf("result = %+v, want every chart empty", result)
	}
	if _, err := os.Stat(filepath.Join(dir, string(chart.Heatmap)+".svg")); !os.IsNotExist(err) {
		t.Fatalf("heatmap svg written for an empty selection: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "charts.json")); err != nil {
		t.Fatalf("charts.json missing: %v", err)
	}
}
