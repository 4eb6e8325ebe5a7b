package filter

import (
	"errors"
	"testing"

	"github.com/open-sspm/vulndash/internal/findings"
)

func sampleRecords() []findings.Record {
	return []findings.Record{
		{ID: "1", Org: "A", ScanType: "sca"},
		{ID: "2", Org: "B", ScanType: "sast"},
		{ID: "3", Org: "A", ScanType: "iac"},
		{ID: "4", Org: "C", ScanType: "sca"},
	}
}

func ids(records []findings.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestStateApplyAllSelected(t *testing.T) {
	var s State
	records := sampleRecords()
	if got := s.Apply(records); len(got) != len(records) {
		t.Fatalf("len(Apply()) = %d, want %d", len(got), len(records))
	}
}

func TestStateToggleSameTokenTwiceFromAll(t *testing.T) {
	var s State
	if err := s.Toggle(KindOrg, "A"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := s.Toggle(KindOrg, "A"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	// The second click removes the only token, which restores all-selected.
	if !s.Org.All() {
		t.Fatalf("Org = %v, want all-selected", s.Org.Values())
	}
}

func TestStateToggleNarrowsToOrg(t *testing.T) {
	var s State
	if err := s.Toggle(KindOrg, "A"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	got := s.Apply(sampleRecords())
	if len(got) != 2 {
		t.Fatalf("Apply() ids = %v, want [1 3]", ids(got))
	}
	for _, r := range got {
		if r.Org != "A" {
			t.Fatalf("record %s has org %q", r.ID, r.Org)
		}
	}
}

func TestStateFiltersCombine(t *testing.T) {
	var s State
	_ = s.Toggle(KindOrg, "A")
	_ = s.Toggle(KindOrg, "C")
	_ = s.Toggle(KindScan, "sca")
	got := ids(s.Apply(sampleRecords()))
	if len(got) != 2 || got[0] != "1" || got[1] != "4" {
		t.Fatalf("Apply() ids = %v, want [1 4]", got)
	}
}

func TestStateReset(t *testing.T) {
	var s State
	_ = s.Toggle(KindOrg, "A")
	_ = s.Toggle(KindScan, "sast")
	s.Reset()
	if !s.IsReset() {
		t.Fatalf("state after Reset = org %v scan %v", s.Org.Values(), s.Scan.Values())
	}
	if got := s.Apply(sampleRecords()); len(got) != 4 {
		t.Fatalf("len(Apply()) = %d, want 4", len(got))
	}
}

func TestStateToggleUnknownKind(t *testing.T) {
	var s State
	if err := s.Toggle(Kind("severity"), "high"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Toggle() error = %v, want ErrUnknownKind", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" ORG "); err != nil || k != KindOrg {
		t.Fatalf("ParseKind() = %q, %v", k, err)
	}
	if _, err := ParseKind("project"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseKind() error = %v, want ErrUnknownKind", err)
	}
}

func TestStateQueryRoundTrip(t *testing.T) {
	var s State
	_ = s.Toggle(KindOrg, "Acme, Inc")
	_ = s.Toggle(KindOrg, "B")
	_ = s.Toggle(KindScan, "iac")

	got := FromQuery(s.Query())
	if !got.Org.Equal(s.Org) || !got.Scan.Equal(s.Scan) {
		t.Fatalf("FromQuery(Query()) = org %v scan %v", got.Org.Values(), got.Scan.Values())
	}
	if len(State{}.Query()) != 0 {
		t.Fatal("all-selected state should encode to no parameters")
	}
}
