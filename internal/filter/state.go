package filter

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/open-sspm/vulndash/internal/findings"
	"github.com/open-sspm/vulndash/internal/normalize"
)

// Kind names one of the two filters.
type Kind string

const (
	KindOrg  Kind = "org"
	KindScan Kind = "scan"
)

var ErrUnknownKind = errors.New("unknown filter kind")

// ParseKind normalizes a filter kind from a path or form value.
func ParseKind(raw string) (Kind, error) {
	switch Kind(normalize.Lower(raw)) {
	case KindOrg:
		return KindOrg, nil
	case KindScan:
		return KindScan, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// State holds both filters. The zero value has everything selected.
type State struct {
	Org  Selection
	Scan Selection
}

// Toggle applies a toggle to the filter named by kind.
func (s *State) Toggle(kind Kind, token string) error {
	switch kind {
	case KindOrg:
		s.Org = s.Org.Toggle(token)
	case KindScan:
		s.Scan = s.Scan.Toggle(token)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}

// Reset forces both filters back to all-selected.
func (s *State) Reset() {
	s.Org = AllSelected()
	s.Scan = AllSelected()
}

func (s State) Selection(kind Kind) Selection {
	if kind == KindScan {
		return s.Scan
	}
	return s.Org
}

func (s State) IsReset() bool {
	return s.Org.All() && s.Scan.All()
}

// Matches reports whether r passes both filters.
func (s State) Matches(r findings.Record) bool {
	return s.Org.Matches(r.Org) && s.Scan.Matches(r.ScanType)
}

// Apply returns a new slice holding the records that pass both filters, in input
// order. The input is never modified.
func (s State) Apply(records []findings.Record) []findings.Record {
	out := make([]findings.Record, 0, len(records))
	for _, r := range records {
		if s.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Query encodes the state as query parameters; all-selected filters are omitted.
func (s State) Query() url.Values {
	values := url.Values{}
	if !s.Org.All() {
		values[string(KindOrg)] = s.Org.Values()
	}
	if !s.Scan.All() {
		values[string(KindScan)] = s.Scan.Values()
	}
	return values
}

// FromQuery decodes a state produced by Query. Blank values are ignored.
func FromQuery(values url.Values) State {
	return State{
		Org:  SomeSelected(splitTokens(values[string(KindOrg)])...),
		Scan: SomeSelected(splitTokens(values[string(KindScan)])...),
	}
}

func splitTokens(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if !normalize.IsBlank(v) {
			out = append(out, v)
		}
	}
	return out
}
