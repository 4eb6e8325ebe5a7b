package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/open-sspm/vulndash/internal/findings"
)

func sampleRecords() []findings.Record {
	five := 5.0
	return []findings.Record{
		{ID: "1", Org: "alpha", Project: "web", ScanType: "sca", Severity: findings.SeverityCritical, Status: "open", CVSS: 9.1, IssueType: "vuln", Language: "go", CWE: "CWE-79", Title: "XSS"},
		{ID: "2", Org: "alpha", Project: "web", ScanType: "sca", Severity: findings.SeverityHigh, Status: "open", CVSS: 7.2, IssueType: "vuln", Language: "go"},
		{ID: "3", Org: "alpha", Project: "api", ScanType: "sast", Severity: findings.SeverityHigh, Status: "open", CVSS: 7.0, IssueType: "vuln", Language: "js"},
		{ID: "4", Org: "beta", Project: "infra", ScanType: "iac", Severity: findings.SeverityLow, Status: "fixed", IssueType: "config", ResolutionDays: &five},
		{ID: "5", Org: "beta", Project: "infra", ScanType: "iac", Severity: findings.SeverityMedium, Status: "open", IssueType: "config"},
	}
}

func TestOrderCoversEverySlotOnce(t *testing.T) {
	if len(Order) != 15 {
		t.Fatalf("len(Order) = %d, want 15", len(Order))
	}
	seen := map[ID]bool{}
	for _, id := range Order {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if !Known(id) {
			t.Fatalf("Known(%q) = false", id)
		}
		if _, ok := builders[id]; !ok {
			t.Fatalf("no builder for %q", id)
		}
	}
	if Known("chart-nope") {
		t.Fatal("Known accepted an unknown id")
	}
}

func TestEmptyMessage(t *testing.T) {
	if got := EmptyMessage(Heatmap); got != DefaultEmptyMessage {
		t.Fatalf("EmptyMessage(Heatmap) = %q", got)
	}
	if got := EmptyMessage(MTTRBar); got != "No fixed issues in current selection" {
		t.Fatalf("EmptyMessage(MTTRBar) = %q", got)
	}
}

func TestDrawEmptyDatasetRendersPlaceholders(t *testing.T) {
	c := NewCollector()
	for _, id := range Order {
		if Draw(c, id, nil) {
			t.Fatalf("Draw(%q, nil) drew a figure", id)
		}
	}
	slots := c.Slots()
	if len(slots) != len(Order) {
		t.Fatalf("len(Slots()) = %d, want %d", len(slots), len(Order))
	}
	for i, s := range slots {
		if s.ID != Order[i] {
			t.Fatalf("slot %d = %q, want %q", i, s.ID, Order[i])
		}
		if !s.IsEmpty() || s.Empty != EmptyMessage(s.ID) {
			t.Fatalf("slot %q = %+v, want placeholder", s.ID, s)
		}
	}
}

func TestDrawWithoutFixedIssues(t *testing.T) {
	records := sampleRecords()[:3]
	c := NewCollector()
	for _, id := range Order {
		Draw(c, id, records)
	}
	mttr, _ := c.Slot(MTTRBar)
	if !mttr.IsEmpty() || mttr.Empty != "No fixed issues in current selection" {
		t.Fatalf("MTTR slot = %+v, want placeholder", mttr)
	}
	heat, _ := c.Slot(Heatmap)
	if heat.IsEmpty() {
		t.Fatal("heatmap rendered empty with open records")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	records := sampleRecords()
	first := NewCollector()
	second := NewCollector()
	for _, id := range Order {
		Draw(first, id, records)
		Draw(second, id, records)
		Draw(second, id, records)
	}
	if !reflect.DeepEqual(first.Slots(), second.Slots()) {
		t.Fatal("re-rendering the same records changed the output")
	}
}

func TestRenderReplacesSlot(t *testing.T) {
	c := NewCollector()
	Draw(c, Heatmap, sampleRecords())
	Draw(c, Heatmap, nil)
	s, ok := c.Slot(Heatmap)
	if !ok || !s.IsEmpty() {
		t.Fatalf("slot = %+v, want placeholder after empty render", s)
	}
	if len(c.Slots()) != 1 {
		t.Fatalf("len(Slots()) = %d, want 1", len(c.Slots()))
	}
}

func TestHeatmapFigure(t *testing.T) {
	fig, ok := Build(Heatmap, sampleRecords())
	if !ok {
		t.Fatal("Build(Heatmap) reported no data")
	}
	tr := fig.Data[0]
	if tr.Type != "heatmap" {
		t.Fatalf("type = %q", tr.Type)
	}
	if !reflect.DeepEqual(tr.Y, []any{"alpha", "beta"}) {
		t.Fatalf("y = %v", tr.Y)
	}
	if !reflect.DeepEqual(tr.Z, [][]int{{1, 2, 0, 0}, {0, 0, 1, 0}}) {
		t.Fatalf("z = %v", tr.Z)
	}
	// Zero cells carry no label.
	wantText := [][]string{{"1", "2", "", ""}, {"", "", "1", ""}}
	if !reflect.DeepEqual(tr.Text, wantText) {
		t.Fatalf("text = %v", tr.Text)
	}
	if tr.TextTemplate != "%{text}" {
		t.Fatalf("texttemplate = %q", tr.TextTemplate)
	}
}

func TestAxisTitleMarshalsAsObject(t *testing.T) {
	b, err := json.Marshal(axisTitle("Month"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"title":{"text":"Month"}}` {
		t.Fatalf("axis = %s", b)
	}
}

func TestOrgTotalsColorsAboveMedian(t *testing.T) {
	fig, ok := Build(OrgTotals, sampleRecords())
	if !ok {
		t.Fatal("Build(OrgTotals) reported no data")
	}
	tr := fig.Data[0]
	if !reflect.DeepEqual(tr.Y, []any{"beta", "alpha"}) {
		t.Fatalf("y = %v", tr.Y)
	}
	// counts [1, 3]: median is 3, nothing is strictly above it.
	if got := tr.Marker.Color.([]string); !reflect.DeepEqual(got, []string{belowMedianColor, belowMedianColor}) {
		t.Fatalf("colors = %v", got)
	}
}

func TestMTTRFigureEncodesAbsentMeansAsNull(t *testing.T) {
	fig, ok := Build(MTTRBar, sampleRecords())
	if !ok {
		t.Fatal("Build(MTTRBar) reported no data")
	}
	body, err := json.Marshal(fig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// beta low has a 5 day mean; alpha has no fixed issues at all.
	if !strings.Contains(string(body), `"y":[null,5]`) {
		t.Fatalf("low trace does not encode [null,5]: %s", body)
	}
	if strings.Contains(string(body), `"y":[0,`) {
		t.Fatalf("absent mean encoded as zero: %s", body)
	}
}

func TestLanguageFigureLabelsUnknown(t *testing.T) {
	fig, ok := Build(Language, sampleRecords())
	if !ok {
		t.Fatal("Build(Language) reported no data")
	}
	if got := fig.Data[0].Y; !reflect.DeepEqual(got, []any{"js", "go", UnknownLanguage}) {
		t.Fatalf("languages = %v", got)
	}
}

func TestRenderersFanOut(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	Draw(Renderers{a, b}, SeverityPie, sampleRecords())
	sa, _ := a.Slot(SeverityPie)
	sb, _ := b.Slot(SeverityPie)
	if sa.IsEmpty() || !reflect.DeepEqual(sa, sb) {
		t.Fatalf("fan-out slots differ: %+v / %+v", sa, sb)
	}
}

func TestWriteSVG(t *testing.T) {
	fig, ok := Build(OrgTotals, sampleRecords())
	if !ok {
		t.Fatal("Build(OrgTotals) reported no data")
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, Title(OrgTotals), fig); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("output is not svg: %.80s", buf.String())
	}
}

func TestWriteSVGWithoutData(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, "empty", Figure{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("WriteSVG() error = %v, want ErrNoData", err)
	}
}
