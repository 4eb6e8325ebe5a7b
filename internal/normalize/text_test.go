package normalize

import "testing"

func TestHeaderStripsBOMAndCase(t *testing.T) {
	if got := Header("\uFEFF Issue_ID "); got != "issue_id" {
		t.Fatalf("Header() = %q, want %q", got, "issue_id")
	}
}

func TestIsBlank(t *testing.T) {
	tests := map[string]bool{
		"":      true,
		"   ":   true,
		"\t\n":  true,
		" x ":   false,
		"value": false,
	}
	for in, want := range tests {
		if got := IsBlank(in); got != want {
			t.Fatalf("IsBlank(%q) = %v, want %v", in, got, want)
		}
	}
}
