package domain

import (
	"sort"
	"strings"
)

// Selection is the pair of optional filter sets applied to the base table.
// A nil or empty slice places no restriction on its column. Selections are
// passed by value; filtering never mutates the table it reads.
type Selection struct {
	States []string `json:"states,omitempty"`
	Cities []string `json:"cities,omitempty"`
}

// IsZero reports whether the selection places no restriction at all.
func (s Selection) IsZero() bool {
	return len(s.States) == 0 && len(s.Cities) == 0
}

// Key returns a canonical representation of the selection, independent of
// the order values were supplied in. Used as a cache key.
func (s Selection) Key() string {
	states := append([]string(nil), s.States...)
	cities := append([]string(nil), s.Cities...)
	sort.Strings(states)
	sort.Strings(cities)
	return "states=" + strings.Join(states, ",") + ";cities=" + strings.Join(cities, ",")
}

// Filter returns the listings matching the selection. The state and city
// restrictions apply conjunctively. Values absent from the table simply
// match nothing. The base slice is shared, not copied: callers must treat
// listings as read-only.
func Filter(base []Listing, sel Selection) []Listing {
	if sel.IsZero() {
		return base
	}

	states := toSet(sel.States)
	cities := toSet(sel.Cities)

	out := make([]Listing, 0, len(base))
	for _, l := range base {
		if states != nil {
			if _, ok := states[l.State]; !ok {
				continue
			}
		}
		if cities != nil {
			if _, ok := cities[l.City]; !ok {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
