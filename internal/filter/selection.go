// Package filter implements the organization and scan-type multi-select filters.
package filter

import "sort"

// AllSentinel is the token that selects every value.
const AllSentinel = "__all__"

// Selection is either AllSelected (the zero value) or SomeSelected over a non-empty
// set of concrete tokens. The sentinel is never mixed with concrete tokens.
type Selection struct {
	some map[string]struct{}
}

// AllSelected returns the all-selected state.
func AllSelected() Selection {
	return Selection{}
}

// SomeSelected returns a selection over the given tokens. Sentinel tokens are ignored
// and an empty input yields AllSelected.
func SomeSelected(tokens ...string) Selection {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == AllSentinel {
			continue
		}
		set[tok] = struct{}{}
	}
	if len(set) == 0 {
		return Selection{}
	}
	return Selection{some: set}
}

func (s Selection) All() bool {
	return len(s.some) == 0
}

// Toggle returns the selection that results from clicking token.
func (s Selection) Toggle(token string) Selection {
	if token == AllSentinel {
		return AllSelected()
	}
	if s.All() {
		return SomeSelected(token)
	}
	next := make(map[string]struct{}, len(s.some)+1)
	for k := range s.some {
		next[k] = struct{}{}
	}
	if _, ok := next[token]; ok {
		delete(next, token)
		if len(next) == 0 {
			return AllSelected()
		}
		return Selection{some: next}
	}
	next[token] = struct{}{}
	return Selection{some: next}
}

// Matches reports whether a record field value passes the filter.
func (s Selection) Matches(value string) bool {
	if s.All() {
		return true
	}
	_, ok := s.some[value]
	return ok
}

// Has reports whether token is active. The sentinel is active iff all are selected.
func (s Selection) Has(token string) bool {
	if token == AllSentinel {
		return s.All()
	}
	if s.All() {
		return false
	}
	_, ok := s.some[token]
	return ok
}

// Values returns the active tokens in ascending order; {AllSentinel} when all are
// selected.
func (s Selection) Values() []string {
	if s.All() {
		return []string{AllSentinel}
	}
	out := make([]string, 0, len(s.some))
	for k := range s.some {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both selections hold the same tokens.
func (s Selection) Equal(other Selection) bool {
	if s.All() || other.All() {
		return s.All() == other.All()
	}
	if len(s.some) != len(other.some) {
		return false
	}
	for k := range s.some {
		if _, ok := other.some[k]; !ok {
			return false
		}
	}
	return true
}
