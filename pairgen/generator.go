// Package pairgen enumerates ordered record-id pairs for a binning.Bin
// under one of four policies, sharing a common generate/count contract,
// and wraps any of them to skip pairs already persisted in the edge
// store.
package pairgen

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/grailbio/bgccompare/bgcmodel"
)

// PairID is an unordered pair of record persistent ids, the unit pair
// generators emit. Hydrating a PairID into a compare.Pair is the batch
// scheduler's job.
type PairID struct {
	A, B int
}

// Generator is the shared contract of every pair-generator variant: a
// finite, non-restartable, lazy enumeration plus an expected count.
// Restart is obtained by reconstructing the generator from its bin, not
// by re-invoking Generate.
type Generator interface {
	// Count returns the number of pairs this generator expects to emit.
	Count(ctx context.Context) (int, error)
	// Generate streams this generator's pairs and closes the returned
	// channel when done. Any error encountered while streaming is
	// available from Err once the channel is closed; Err must not be
	// called before that.
	Generate(ctx context.Context) <-chan PairID
	// Err returns the first error encountered during the most recent
	// Generate call, or nil. Valid only after that call's channel closes.
	Err() error
}

// sameParentGBK reports whether a and b share a parent GBK, the
// self/sibling suppression rule every generator applies.
func sameParentGBK(a, b *bgcmodel.Record) bool {
	if a.Parent == nil || b.Parent == nil {
		return false
	}
	return a.Parent.ID == b.Parent.ID
}

// legacySortKey returns the parent GBK's file stem (no extension), or ""
// if the record has no parent GBK. Used by the optional legacy ordering
// pass to make A/B-asymmetric scores reproduce earlier versions.
func legacySortKey(r *bgcmodel.Record) string {
	if r.Parent == nil {
		return ""
	}
	base := filepath.Base(r.Parent.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// legacySort orders a and b by legacySortKey: stable, so b is returned
// first only when its key strictly precedes a's.
func legacySort(a, b *bgcmodel.Record) (*bgcmodel.Record, *bgcmodel.Record) {
	if legacySortKey(b) < legacySortKey(a) {
		return b, a
	}
	return a, b
}

func orderedPair(a, b *bgcmodel.Record, legacySorting bool) PairID {
	if legacySorting {
		a, b = legacySort(a, b)
	}
	return PairID{A: a.ID, B: b.ID}
}
