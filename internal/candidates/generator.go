// Package candidates enumerates every plausible canonical interpretation of a
// raw phone-number string, relative to the owner's own number.
package candidates

import (
	"strings"

	"github.com/allyourbase/numcanon/internal/numplan"
	"github.com/allyourbase/numcanon/internal/phone"
)

// Generator produces candidate sets. It is immutable after construction and
// safe for concurrent use.
type Generator struct {
	oracle numplan.Oracle
	parser *phone.Parser
	rules  []Rule
}

// NewGenerator creates a Generator. If oracle is nil, numplan.Default() is
// used; if rules is nil, DefaultRules is used. Pass an empty non-nil slice to
// disable every heuristic.
func NewGenerator(oracle numplan.Oracle, rules []Rule) *Generator {
	if oracle == nil {
		oracle = numplan.Default()
	}
	if rules == nil {
		rules = DefaultRules
	}
	return &Generator{
		oracle: oracle,
		parser: phone.NewParser(oracle),
		rules:  rules,
	}
}

// Parser returns the parser the generator resolves input with.
func (g *Generator) Parser() *phone.Parser { return g.parser }

// Generate returns the candidates for raw, using local (the owner's own
// number) as the default region and the source of a missing area code.
// The direct interpretation comes first, followed by area-code candidates and
// then prefix-toggle siblings. Only fully valid numbers are included.
func (g *Generator) Generate(raw string, local phone.Number) Set {
	var set Set
	d := phone.Normalize(raw)
	if d.Empty() {
		return set
	}
	region := g.oracle.RegionForCallingCode(local.CallingCode())

	if n, ok := g.parser.ParseContextual(raw, 0, region); ok {
		set.add(n)
	}

	// An explicit '+' means the user supplied the whole number.
	if !d.Plus && !local.IsZero() {
		for _, r := range g.rules {
			if r.Kind != MissingAreaCode || !g.applies(r, local.CallingCode()) {
				continue
			}
			if n, ok := g.withAreaCode(r, d.Digits, local); ok {
				set.add(n)
			}
		}
	}

	for _, r := range g.rules {
		if r.Kind != PrefixToggle {
			continue
		}
		for _, n := range set.Numbers() {
			if !g.applies(r, n.CallingCode()) {
				continue
			}
			if sibling, ok := g.toggle(r, n); ok {
				set.add(sibling)
			}
		}
	}
	return set
}

func (g *Generator) applies(r Rule, callingCode int) bool {
	cc := g.oracle.CallingCodeForRegion(r.Region)
	return cc > 0 && cc == callingCode
}

// withAreaCode completes a bare subscriber number with the area code of the
// local number. A mobile prefix stays in front of the subscriber digits.
func (g *Generator) withAreaCode(r Rule, digits string, local phone.Number) (phone.Number, bool) {
	want := g.oracle.SubscriberLength(r.Region)
	areaLen := g.oracle.AreaCodeLength(r.Region)
	if want == 0 || areaLen == 0 || len(local.National()) <= areaLen {
		return phone.Number{}, false
	}
	if p, ok := g.oracle.MobilePrefix(r.Region); ok && digits[0] == p {
		want++
	}
	if len(digits) != want {
		return phone.Number{}, false
	}
	area := local.National()[:areaLen]
	return g.parser.ParseParts(local.CallingCode(), area+digits)
}

func (g *Generator) toggle(r Rule, n phone.Number) (phone.Number, bool) {
	p, ok := g.oracle.MobilePrefix(r.Region)
	if !ok {
		return phone.Number{}, false
	}
	prefix := string(p)
	national := n.National()
	if rest, ok := strings.CutPrefix(national, prefix); ok {
		return g.parser.ParseParts(n.CallingCode(), rest)
	}
	return g.parser.ParseParts(n.CallingCode(), prefix+national)
}
