package contacts

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allyourbase/numcanon/internal/candidates"
	"github.com/allyourbase/numcanon/internal/phone"
	"github.com/allyourbase/numcanon/internal/testutil"
)

func newTestAggregator(t *testing.T, workers int) (*Aggregator, phone.Number) {
	t.Helper()
	o := testutil.NewStubOracle(
		"+13233214321",
		"+13235551234",
		"+19025550123",
		"+528341639157",
		"+5218341639157",
	)
	gen := candidates.NewGenerator(o, nil)
	local, ok := gen.Parser().ParseCanonical("+13233214321")
	require.True(t, ok)
	return NewAggregator(gen, testutil.DiscardLogger(), workers), local
}

func TestAggregateUnionsEntries(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 1)

	got := a.Aggregate([]Entry{
		{Raw: "555-1234", Label: "home"},
		{Raw: "+1 902 555 0123", Label: "work"},
		{Raw: "+52 834 163 9157", Label: "mobile"},
	}, local)

	assert.Equal(t, []string{
		"+13235551234",
		"+19025550123",
		"+5218341639157",
		"+528341639157",
	}, got.Strings())
}

func TestAggregateIgnoresFailedEntries(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 1)

	got := a.Aggregate([]Entry{
		{Raw: "", Label: "empty"},
		{Raw: "+5551234", Label: "impossible"},
		{Raw: "ask reception", Label: "note"},
		{Raw: "902.555.0123", Label: "work"},
	}, local)

	assert.Equal(t, []string{"+19025550123"}, got.Strings())
}

func TestAggregateIsIdempotent(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 1)
	e := Entry{Raw: "555-1234", Label: "home"}

	once := a.Aggregate([]Entry{e}, local)
	twice := a.Aggregate([]Entry{e, e}, local)
	assert.Equal(t, once.Strings(), twice.Strings())
	assert.Equal(t, 1, twice.Len())
}

func TestAggregateNoEntries(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 1)
	got := a.Aggregate(nil, local)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []string{}, got.Strings())
}

func TestAggregateAllKeepsOrder(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 3)

	var batch []Contact
	for i := range 20 {
		raw := "555-1234"
		if i%2 == 1 {
			raw = "garbage"
		}
		batch = append(batch, Contact{ID: fmt.Sprintf("c%d", i), Entries: []Entry{{Raw: raw}}})
	}

	results, err := a.AggregateAll(context.Background(), batch, local)
	require.NoError(t, err)
	require.Len(t, results, len(batch))
	for i, r := range results {
		assert.Equal(t, batch[i].ID, r.ContactID)
		if i%2 == 0 {
			assert.True(t, r.Matches.Contains("+13235551234"), r.ContactID)
		} else {
			assert.Equal(t, 0, r.Matches.Len(), r.ContactID)
		}
	}
}

func TestAggregateAllCancelled(t *testing.T) {
	t.Parallel()
	a, local := newTestAggregator(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AggregateAll(ctx, []Contact{{ID: "a", Entries: []Entry{{Raw: "555-1234"}}}}, local)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAggregatorDefaults(t *testing.T) {
	t.Parallel()
	a := NewAggregator(candidates.NewGenerator(testutil.NewStubOracle(), nil), nil, 0)
	assert.Equal(t, DefaultWorkers, a.workers)
	assert.NotNil(t, a.logger)
}

func TestMatchSet(t *testing.T) {
	t.Parallel()
	a := NewMatchSet("+2", "+1")
	b := NewMatchSet("+3", "+1")

	u := a.Union(b)
	assert.Equal(t, []string{"+1", "+2", "+3"}, u.Strings())
	assert.Equal(t, 2, a.Len(), "union does not modify its operands")
	assert.True(t, u.Contains("+3"))
	assert.False(t, u.Contains("+4"))

	data, err := json.Marshal(Result{ContactID: "x", Matches: u})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","matches":["+1","+2","+3"]}`, string(data))

	data, err = json.Marshal(MatchSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
