package pairgen

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/bgcmodel"
)

// AllVsAll emits every pair of records in a bin, skipping pairs whose
// records share a parent GBK.
type AllVsAll struct {
	Records       []*bgcmodel.Record
	LegacySorting bool

	err errors.Once
}

var _ Generator = (*AllVsAll)(nil)

// NewAllVsAll builds an AllVsAll generator over records.
func NewAllVsAll(records []*bgcmodel.Record, legacySorting bool) *AllVsAll {
	return &AllVsAll{Records: records, LegacySorting: legacySorting}
}

// Count returns C(n,2) minus the same-GBK pairs it will skip.
func (g *AllVsAll) Count(ctx context.Context) (int, error) {
	n := len(g.Records)
	if n < 2 {
		return 0, nil
	}
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !sameParentGBK(g.Records[i], g.Records[j]) {
				count++
			}
		}
	}
	return count, nil
}

func (g *AllVsAll) Generate(ctx context.Context) <-chan PairID {
	out := make(chan PairID)
	go func() {
		defer close(out)
		n := len(g.Records)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				a, b := g.Records[i], g.Records[j]
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

func (g *AllVsAll) Err() error { return g.err.Err() }
