package pairgen

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/edgestore"
)

// connectedCutoff is the distance threshold below which a stored edge
// marks both its endpoints as "connected".
const connectedCutoff = 1.0

// RefToRef emits the Cartesian product of connected reference records
// (those with a stored edge below connectedCutoff, excluding records
// already marked done) against singleton reference records.
//
// After Generate runs to completion, the connected set it used is folded
// into doneIDs so a subsequent call with the same generator does not
// re-yield those pairs.
type RefToRef struct {
	Store         *edgestore.Store
	ParamID       int64
	ReferenceIDs  []int
	ByID          map[int]*bgcmodel.Record
	LegacySorting bool

	doneIDs map[int]bool
	err     errors.Once
}

var _ Generator = (*RefToRef)(nil)

// NewRefToRef builds a RefToRef generator over the reference-source
// records among records, querying store for connectivity under paramID.
func NewRefToRef(store *edgestore.Store, paramID int64, records []*bgcmodel.Record, legacySorting bool) *RefToRef {
	g := &RefToRef{
		Store:         store,
		ParamID:       paramID,
		ByID:          map[int]*bgcmodel.Record{},
		LegacySorting: legacySorting,
		doneIDs:       map[int]bool{},
	}
	for _, r := range records {
		g.ByID[r.ID] = r
		if r.Parent != nil && r.Parent.SourceType == bgcmodel.Reference {
			g.ReferenceIDs = append(g.ReferenceIDs, r.ID)
		}
	}
	return g
}

func (g *RefToRef) excludeIDs() []int {
	out := make([]int, 0, len(g.doneIDs))
	for id := range g.doneIDs {
		out = append(out, id)
	}
	return out
}

func (g *RefToRef) connected(ctx context.Context) ([]int, error) {
	return g.Store.ConnectedRecordIDs(ctx, g.ParamID, g.ReferenceIDs, g.excludeIDs(), connectedCutoff)
}

func (g *RefToRef) singletons(ctx context.Context, connectedSet map[int]bool) []int {
	var out []int
	for _, id := range g.ReferenceIDs {
		if !connectedSet[id] {
			out = append(out, id)
		}
	}
	return out
}

func (g *RefToRef) Count(ctx context.Context) (int, error) {
	connected, err := g.connected(ctx)
	if err != nil {
		return 0, errors.E(err, "pairgen: count ref-to-ref")
	}
	connectedSet := map[int]bool{}
	for _, id := range connected {
		connectedSet[id] = true
	}
	singletons := g.singletons(ctx, connectedSet)

	count := 0
	for _, aID := range connected {
		for _, bID := range singletons {
			if !sameParentGBK(g.ByID[aID], g.ByID[bID]) {
				count++
			}
		}
	}
	return count, nil
}

func (g *RefToRef) Generate(ctx context.Context) <-chan PairID {
	out := make(chan PairID)
	go func() {
		defer close(out)
		connected, err := g.connected(ctx)
		if err != nil {
			g.err.Set(err)
			return
		}
		connectedSet := map[int]bool{}
		for _, id := range connected {
			connectedSet[id] = true
			g.doneIDs[id] = true
		}
		singletons := g.singletons(ctx, connectedSet)

		for _, aID := range connected {
			for _, bID := range singletons {
				a, b := g.ByID[aID], g.ByID[bID]
				if sameParentGBK(a, b) {
					continue
				}
				select {
				case out <- orderedPair(a, b, g.LegacySorting):
				case <-ctx.Done():
					g.err.Set(ctx.Err())
					return
				}
			}
		}
	}()
	return out
}

func (g *RefToRef) Err() error { return g.err.Err() }
