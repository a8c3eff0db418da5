package pairgen

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/edgestore"
)

// ComponentReplay re-emits exactly the record-id pairs of a previously
// stored connected component, in edge order.
type ComponentReplay struct {
	Edges []edgestore.Edge

	err errors.Once
}

var _ Generator = (*ComponentReplay)(nil)

// NewComponentReplay builds a replay generator over edges, a single
// connected component's previously stored rows.
func NewComponentReplay(edges []edgestore.Edge) *ComponentReplay {
	return &ComponentReplay{Edges: edges}
}

func (g *ComponentReplay) Count(ctx context.Context) (int, error) {
	return len(g.Edges), nil
}

func (g *ComponentReplay) Generate(ctx context.Context) <-chan PairID {
	out := make(chan PairID)
	go func() {
		defer close(out)
		for _, e := range g.Edges {
			select {
			case out <- PairID{A: e.RecordAID, B: e.RecordBID}:
			case <-ctx.Done():
				g.err.Set(ctx.Err())
				return
			}
		}
	}()
	return out
}

func (g *ComponentReplay) Err() error { return g.err.Err() }
