// Package binning classifies BGC records into labeled bins and assigns
// each bin the weight profile and edge-parameter id its records will be
// scored with.
package binning

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/edgestore"
	"github.com/grailbio/bgccompare/weights"
)

// Bin groups records that share a weight profile and edge-parameter id.
// A Bin's record set is fixed once built; CullSingletons is the only
// supported way to shrink it afterward.
type Bin struct {
	Label   string
	Records []*bgcmodel.Record

	Profile weights.Profile
	Mode    weights.AlignmentMode
	Ext     weights.ExtendParams
	ParamID weights.EdgeParamID

	recordIDs map[int]bool
}

func newBin(label string, profile weights.Profile, mode weights.AlignmentMode, ext weights.ExtendParams) *Bin {
	return &Bin{
		Label:     label,
		Profile:   profile,
		Mode:      mode,
		Ext:       ext,
		ParamID:   weights.Resolve(profile, mode, ext),
		recordIDs: map[int]bool{},
	}
}

// AddRecords appends records to the bin. Every record must already carry
// a persistent id; a record without one is an input-integrity error.
func (b *Bin) AddRecords(records ...*bgcmodel.Record) error {
	for _, r := range records {
		if !r.HasPersistentID() {
			return errors.E(errors.Invalid, "binning: record has no persistent id", r.String())
		}
		b.Records = append(b.Records, r)
		b.recordIDs[r.ID] = true
	}
	return nil
}

// RecordIDs returns the bin's persistent record ids.
func (b *Bin) RecordIDs() []int {
	out := make([]int, 0, len(b.recordIDs))
	for id := range b.recordIDs {
		out = append(out, id)
	}
	return out
}

// NumPairs is the all-vs-all pair count C(n,2); pair generators of other
// variants compute their own counts.
func (b *Bin) NumPairs() int {
	n := len(b.Records)
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// CullSingletons removes records with no stored edge under this bin's
// edge-param id scoring below cutoff. It is the complement to the
// ref-connected/ref-singleton generator's "connected" predicate: both
// rely on Store.ConnectedRecordIDs.
func (b *Bin) CullSingletons(ctx context.Context, store *edgestore.Store, cutoff float64) error {
	ids := b.RecordIDs()
	connected, err := store.ConnectedRecordIDs(ctx, int64(b.ParamID), ids, nil, cutoff)
	if err != nil {
		return errors.E(err, "binning: cull singletons")
	}
	keep := map[int]bool{}
	for _, id := range connected {
		keep[id] = true
	}
	filtered := b.Records[:0:0]
	for _, r := range b.Records {
		if keep[r.ID] {
			filtered = append(filtered, r)
		}
	}
	b.Records = filtered
	b.recordIDs = keep
	return nil
}

func (b *Bin) String() string {
	return fmt.Sprintf("%s(%d records)", b.Label, len(b.Records))
}
