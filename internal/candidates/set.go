package candidates

import (
	"slices"

	"github.com/allyourbase/numcanon/internal/phone"
)

// Set is an ordered collection of canonical numbers, de-duplicated by E.164
// string and kept in first-seen order. The zero value is an empty set.
type Set struct {
	numbers []phone.Number
	seen    map[string]struct{}
}

// add appends n unless an equal number is already present.
func (s *Set) add(n phone.Number) {
	key := n.String()
	if _, ok := s.seen[key]; ok {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[key] = struct{}{}
	s.numbers = append(s.numbers, n)
}

// Len returns the number of candidates.
func (s Set) Len() int { return len(s.numbers) }

// Numbers returns the candidates, most direct interpretation first.
func (s Set) Numbers() []phone.Number { return slices.Clone(s.numbers) }

// Strings returns the E.164 form of every candidate, in order.
func (s Set) Strings() []string {
	out := make([]string, len(s.numbers))
	for i, n := range s.numbers {
		out[i] = n.String()
	}
	return out
}

// Contains reports whether e164 is one of the candidates.
func (s Set) Contains(e164 string) bool {
	_, ok := s.seen[e164]
	return ok
}
