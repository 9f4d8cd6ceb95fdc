// Package contacts unions the candidate numbers of every phone field of a
// contact into the match set used for contact discovery.
package contacts

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/allyourbase/numcanon/internal/candidates"
	"github.com/allyourbase/numcanon/internal/phone"
)

// DefaultWorkers bounds AggregateAll when no worker count is configured.
const DefaultWorkers = 8

// Entry is one raw phone field of a contact. Label ("mobile", "work") is
// only used for diagnostics.
type Entry struct {
	Raw   string `json:"number"`
	Label string `json:"label,omitempty"`
}

// Contact groups the phone fields of one address-book contact.
type Contact struct {
	ID      string  `json:"id"`
	Entries []Entry `json:"entries"`
}

// Result is the match set computed for one contact.
type Result struct {
	ContactID string   `json:"id"`
	Matches   MatchSet `json:"matches"`
}

// Aggregator builds match sets from contact entries.
type Aggregator struct {
	gen     *candidates.Generator
	logger  *slog.Logger
	workers int
}

// NewAggregator creates an Aggregator. If logger is nil, slog.Default() is
// used; workers below 1 fall back to DefaultWorkers.
func NewAggregator(gen *candidates.Generator, logger *slog.Logger, workers int) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Aggregator{gen: gen, logger: logger, workers: workers}
}

// Aggregate returns the union of the candidate sets of every entry. An entry
// with no candidates contributes nothing and does not affect the others.
func (a *Aggregator) Aggregate(entries []Entry, local phone.Number) MatchSet {
	var out MatchSet
	for _, e := range entries {
		set := a.gen.Generate(e.Raw, local)
		if set.Len() == 0 {
			a.logger.Debug("no candidates for entry", "label", e.Label, "digits", len(phone.Normalize(e.Raw).Digits))
			continue
		}
		for _, s := range set.Strings() {
			out.add(s)
		}
	}
	return out
}

// AggregateAll aggregates many contacts concurrently. Results keep the input
// order. The only error is ctx being cancelled before every contact was done.
func (a *Aggregator) AggregateAll(ctx context.Context, contacts []Contact, local phone.Number) ([]Result, error) {
	results := make([]Result, len(contacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, c := range contacts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{ContactID: c.ID, Matches: a.Aggregate(c.Entries, local)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("aggregated contacts", "contacts", len(contacts), "workers", a.workers)
	return results, nil
}
