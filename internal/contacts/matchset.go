package contacts

import (
	"encoding/json"
	"maps"
	"slices"
)

// MatchSet is the set of canonical numbers a contact may be registered under.
// The zero value is an empty set.
type MatchSet struct {
	m map[string]struct{}
}

// NewMatchSet returns a set holding the given E.164 strings.
func NewMatchSet(e164 ...string) MatchSet {
	var s MatchSet
	for _, v := range e164 {
		s.add(v)
	}
	return s
}

func (s *MatchSet) add(e164 string) {
	if s.m == nil {
		s.m = make(map[string]struct{})
	}
	s.m[e164] = struct{}{}
}

// Len returns the number of distinct numbers.
func (s MatchSet) Len() int { return len(s.m) }

// Contains reports whether e164 is in the set.
func (s MatchSet) Contains(e164 string) bool {
	_, ok := s.m[e164]
	return ok
}

// Strings returns the numbers in sorted order.
func (s MatchSet) Strings() []string {
	if len(s.m) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s.m))
}

// Union returns a new set holding the numbers of both sets.
func (s MatchSet) Union(other MatchSet) MatchSet {
	out := MatchSet{m: make(map[string]struct{}, len(s.m)+len(other.m))}
	maps.Copy(out.m, s.m)
	maps.Copy(out.m, other.m)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s MatchSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}
