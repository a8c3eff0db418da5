package pairgen

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/edgestore"
)

// MissingOnly wraps another Generator to exclude pairs already stored
// under paramID, in either orientation.
type MissingOnly struct {
	Inner     Generator
	Store     *edgestore.Store
	ParamID   int64
	RecordIDs []int

	err errors.Once
}

var _ Generator = (*MissingOnly)(nil)

// NewMissingOnly wraps inner, filtering against store's existing pairs
// among recordIDs under paramID.
func NewMissingOnly(inner Generator, store *edgestore.Store, paramID int64, recordIDs []int) *MissingOnly {
	return &MissingOnly{Inner: inner, Store: store, ParamID: paramID, RecordIDs: recordIDs}
}

func (g *MissingOnly) Count(ctx context.Context) (int, error) {
	total, err := g.Inner.Count(ctx)
	if err != nil {
		return 0, err
	}
	existing, err := g.Store.CountExistingPairs(ctx, g.ParamID, g.RecordIDs)
	if err != nil {
		return 0, errors.E(err, "pairgen: count missing-only")
	}
	return total - existing, nil
}

func (g *MissingOnly) Generate(ctx context.Context) <-chan PairID {
	out := make(chan PairID)
	go func() {
		defer close(out)
		existing, err := g.Store.ExistingPairs(ctx, g.ParamID, g.RecordIDs)
		if err != nil {
			g.err.Set(errors.E(err, "pairgen: missing-only existing pairs"))
			return
		}
		for pair := range g.Inner.Generate(ctx) {
			key := canonicalKey(pair.A, pair.B)
			if existing[key] {
				continue
			}
			select {
			case out <- pair:
			case <-ctx.Done():
				g.err.Set(ctx.Err())
				return
			}
		}
		if err := g.Inner.Err(); err != nil {
			g.err.Set(err)
		}
	}()
	return out
}

func (g *MissingOnly) Err() error { return g.err.Err() }

func canonicalKey(a, b int) [2]int {
	if a <= b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}
