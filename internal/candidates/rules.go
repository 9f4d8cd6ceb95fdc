package candidates

import (
	"errors"
	"fmt"
	"slices"
)

// RuleKind selects how a Rule rewrites or extends the candidate set.
type RuleKind int

const (
	// MissingAreaCode prepends the local number's area code to input that is
	// exactly one subscriber number long.
	MissingAreaCode RuleKind = iota + 1
	// PrefixToggle adds the sibling of a candidate with the region's mobile
	// prefix digit inserted or removed right after the calling code.
	PrefixToggle
)

func (k RuleKind) String() string {
	switch k {
	case MissingAreaCode:
		return "missing-area-code"
	case PrefixToggle:
		return "prefix-toggle"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule is one regional heuristic. A rule applies to every region sharing
// Region's calling code, so "US" covers the whole North American plan.
type Rule struct {
	Name   string
	Kind   RuleKind
	Region string
}

// ErrUnknownRule is returned by RulesExcept for names not in DefaultRules.
var ErrUnknownRule = errors.New("unknown candidate rule")

// DefaultRules are the heuristics applied when a Generator is built without
// an explicit rule list.
var DefaultRules = []Rule{
	{Name: "nanp-area-code", Kind: MissingAreaCode, Region: "US"},
	{Name: "br-area-code", Kind: MissingAreaCode, Region: "BR"},
	{Name: "mx-mobile-prefix", Kind: PrefixToggle, Region: "MX"},
}

// RulesExcept returns DefaultRules minus the named rules. Unknown names are
// an error so that configuration typos are not silently ignored.
func RulesExcept(names ...string) ([]Rule, error) {
	for _, name := range names {
		if !slices.ContainsFunc(DefaultRules, func(r Rule) bool { return r.Name == name }) {
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
	}
	rules := make([]Rule, 0, len(DefaultRules))
	for _, r := range DefaultRules {
		if !slices.Contains(names, r.Name) {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// RuleNames lists the names of DefaultRules.
func RuleNames() []string {
	names := make([]string, len(DefaultRules))
	for i, r := range DefaultRules {
		names[i] = r.Name
	}
	return names
}
