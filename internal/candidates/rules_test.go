package candidates_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allyourbase/numcanon/internal/candidates"
)

func TestRulesExcept(t *testing.T) {
	t.Parallel()

	all, err := candidates.RulesExcept()
	require.NoError(t, err)
	assert.Equal(t, candidates.DefaultRules, all)

	rules, err := candidates.RulesExcept("mx-mobile-prefix")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	for _, r := range rules {
		assert.Equal(t, candidates.MissingAreaCode, r.Kind)
	}

	none, err := candidates.RulesExcept(candidates.RuleNames()...)
	require.NoError(t, err)
	assert.NotNil(t, none, "empty slice, not nil, so NewGenerator keeps rules disabled")
	assert.Empty(t, none)
}

func TestRulesExceptUnknown(t *testing.T) {
	t.Parallel()
	_, err := candidates.RulesExcept("nanp-area-code", "typo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, candidates.ErrUnknownRule))
	assert.Contains(t, err.Error(), `"typo"`)
}

func TestRuleKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"nanp-area-code", "br-area-code", "mx-mobile-prefix"}, candidates.RuleNames())
	assert.NotEqual(t, candidates.MissingAreaCode.String(), candidates.PrefixToggle.String())
}
