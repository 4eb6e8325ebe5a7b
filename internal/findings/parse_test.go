package findings

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `issue_id,org_name,project_name,scan_type,severity,risk_score,cvss_score,priority_score,issue_type,exploit_maturity,cwe_id,is_fixable,status,discovered_date,introduced_date,resolved_date,resolution_days,language,title
SNYK-1,acme,api,sca,critical,812.5,9.8,850,vuln,mature,CWE-79,True,open,2024-01-15,2023-12-01,,,javascript,Cross-site Scripting
SNYK-2,acme,web,sast,High,not-a-number,7.1,x,vuln,,CWE-89,False,fixed,2024-02-03T10:00:00Z,2024-01-20,2024-02-10,7,python,SQL Injection

  ,globex,infra,iac,low,1,0,1,config,,,True,open,2024-03-01,2024-03-01,,,,
SNYK-4,globex,infra,iac,medium,,,,config,,,true,ignored,bogus-date,2024-03-01,,3,,`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}

	first := records[0]
	if first.ID != "SNYK-1" || first.Org != "acme" || first.Severity != SeverityCritical {
		t.Fatalf("first record = %+v", first)
	}
	if first.CVSS != 9.8 || first.PriorityScore != 850 || first.RiskScore != 812.5 {
		t.Fatalf("first numeric fields = cvss %v priority %v risk %v", first.CVSS, first.PriorityScore, first.RiskScore)
	}
	if !first.Fixable {
		t.Fatal("first.Fixable = false, want true")
	}
	if first.ResolutionDays != nil || first.Resolved != nil {
		t.Fatalf("open record has resolution data: %+v", first)
	}
	if got := MonthKey(first.Discovered); got != "2024-01" {
		t.Fatalf("MonthKey(discovered) = %q, want %q", got, "2024-01")
	}

	second := records[1]
	if second.Severity != SeverityHigh {
		t.Fatalf("severity = %q, want %q", second.Severity, SeverityHigh)
	}
	if second.RiskScore != 0 || second.PriorityScore != 0 {
		t.Fatalf("unparsable numerics = risk %v priority %v, want 0", second.RiskScore, second.PriorityScore)
	}
	if second.Fixable {
		t.Fatal("second.Fixable = true, want false")
	}
	if second.ResolutionDays == nil || *second.ResolutionDays != 7 {
		t.Fatalf("ResolutionDays = %v, want 7", second.ResolutionDays)
	}
	if !second.IsResolved() {
		t.Fatal("IsResolved() = false, want true")
	}

	third := records[2]
	if third.Fixable {
		t.Fatal("lower-case true must not count as fixable")
	}
	if !third.Discovered.IsZero() {
		t.Fatalf("Discovered = %v, want zero time for invalid date", third.Discovered)
	}
	if third.ResolutionDays != nil {
		t.Fatalf("ResolutionDays = %v, want nil for non-fixed status", *third.ResolutionDays)
	}
}

func TestParseRowsDropsBlankIdentifiers(t *testing.T) {
	rows := []map[string]string{
		{ColIssueID: "1", ColOrgName: "A"},
		{ColIssueID: "   ", ColOrgName: "A"},
		{ColOrgName: "B"},
		{ColIssueID: "4", ColOrgName: "B"},
	}
	records := ParseRows(rows)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if len(records) > len(rows) {
		t.Fatalf("parsed more records than rows")
	}
	for _, r := range records {
		if r.ID == "" {
			t.Fatal("record with empty id survived parsing")
		}
	}
}

func TestParseRowsKeepsAllRowsWithIdentifiers(t *testing.T) {
	rows := []map[string]string{{ColIssueID: "1"}, {ColIssueID: "2"}, {ColIssueID: "3"}}
	if got := len(ParseRows(rows)); got != len(rows) {
		t.Fatalf("len(ParseRows()) = %d, want %d", got, len(rows))
	}
}

func TestParseRowResolutionDays(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
		want *float64
	}{
		{name: "fixed with days", row: map[string]string{ColIssueID: "1", ColStatus: "fixed", ColResolutionDays: "5"}, want: ptr(5)},
		{name: "fixed without days", row: map[string]string{ColIssueID: "1", ColStatus: "fixed"}, want: nil},
		{name: "fixed with garbage", row: map[string]string{ColIssueID: "1", ColStatus: "fixed", ColResolutionDays: "soon"}, want: nil},
		{name: "open with days", row: map[string]string{ColIssueID: "1", ColStatus: "open", ColResolutionDays: "5"}, want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRow(tc.row).ResolutionDays
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("ResolutionDays = %v, want nil", *got)
			case tc.want != nil && (got == nil || *got != *tc.want):
				t.Fatalf("ResolutionDays = %v, want %v", got, *tc.want)
			}
		})
	}
}

func TestParseRowMissingNumericsDefaultToZero(t *testing.T) {
	r := ParseRow(map[string]string{ColIssueID: "1", ColCVSSScore: "NaN"})
	if r.CVSS != 0 || r.PriorityScore != 0 || r.RiskScore != 0 {
		t.Fatalf("numerics = cvss %v priority %v risk %v, want zero", r.CVSS, r.PriorityScore, r.RiskScore)
	}
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("issue_id,title\n1,\"unterminated\n"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("ParseCSV() error = %v, want ErrParse", err)
	}
}

func TestParseCSVEmptyDocument(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len(records) = %d, want 0", len(records))
	}
}

func TestSummarize(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	s := Summarize(records)
	if s.Issues != 3 || s.Orgs != 2 || s.Projects != 3 {
		t.Fatalf("Summarize() = %+v", s)
	}
	if s.FirstMonth != "2024-01" || s.LastMonth != "2024-02" {
		t.Fatalf("range = %s..%s, want 2024-01..2024-02", s.FirstMonth, s.LastMonth)
	}
}

func TestOrgsAndScanTypesSorted(t *testing.T) {
	records := []Record{{Org: "b", ScanType: "sast"}, {Org: "a", ScanType: "iac"}, {Org: "b", ScanType: "sca"}}
	orgs := Orgs(records)
	if len(orgs) != 2 || orgs[0] != "a" || orgs[1] != "b" {
		t.Fatalf("Orgs() = %v", orgs)
	}
	scans := ScanTypes(records)
	if len(scans) != 3 || scans[0] != "iac" || scans[2] != "sca" {
		t.Fatalf("ScanTypes() = %v", scans)
	}
}

func TestSeverityRank(t *testing.T) {
	if SeverityCritical.Rank() <= SeverityHigh.Rank() || SeverityLow.Rank() != 1 {
		t.Fatal("unexpected severity ranks")
	}
	if Severity("info").Rank() != 0 {
		t.Fatal("unknown severity should rank 0")
	}
}

func ptr(v float64) *float64 { return &v }
