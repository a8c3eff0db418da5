package pairgen

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/bgcmodel"
)

// QueryToRef partitions records by source-type and emits query↔ref and
// query↔query pairs, never ref↔ref.
type QueryToRef struct {
	QueryRecords     []*bgcmodel.Record
	ReferenceRecords []*bgcmodel.Record
	LegacySorting    bool

	err errors.Once
}

var _ Generator = (*QueryToRef)(nil)

// NewQueryToRef partitions records into query/reference sets by their
// parent GBK source-type. Records without a parent GBK are treated as
// reference.
func NewQueryToRef(records []*bgcmodel.Record, legacySorting bool) *QueryToRef {
	g := &QueryToRef{LegacySorting: legacySorting}
	for _, r := range records {
		if r.Parent != nil && r.Parent.SourceType == bgcmodel.Query {
			g.QueryRecords = append(g.QueryRecords, r)
		} else {
			g.ReferenceRecords = append(g.ReferenceRecords, r)
		}
	}
	return g
}

func (g *QueryToRef) Count(ctx context.Context) (int, error) {
	count := 0
	for i, a := range g.QueryRecords {
		rest := append(append([]*bgcmodel.Record{}, g.ReferenceRecords...), g.QueryRecords[i+1:]...)
		for _, b := range rest {
			if a.ID == b.ID || sameParentGBK(a, b) {
				continue
			}
			count++
		}
	}
	return count, nil
}

func (g *QueryToRef) Generate(ctx context.Context) <-chan PairID {
	out := make(chan PairID)
	go func() {
		defer close(out)
		for i, a := range g.QueryRecords {
			rest := append(append([]*bgcmodel.Record{}, g.ReferenceRecords...), g.QueryRecords[i+1:]...)
			for _, b := range rest {
				if a.ID == b.ID || sameParentGBK(a, b) {
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

func (g *QueryToRef) Err() error { return g.err.Err() }
