package schedule

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/binning"
	"github.com/grailbio/bgccompare/compare"
	"github.com/grailbio/bgccompare/edgestore"
	"github.com/grailbio/bgccompare/pairgen"
)

// DefaultDesiredBatch is the default per-batch pair count before the
// cores-based clamp in BatchSize.
const DefaultDesiredBatch = 10000

// CompareBin is the per-bin coordinator: it hydrates gen's record-id
// pairs into compare.Pairs over bin's records, fans them out across
// workers for scoring, and writes the scored edges back to store from
// this (single-writer) goroutine after each batch-sized group of results.
// Returns the number of edges written.
//
// Bins with fewer than two records, or generators with no pairs to emit,
// are skipped without error. An unreachable store at bin start, a pair
// referencing a record outside the bin, or any worker error aborts the
// bin and is returned; already-written edges are left in place.
func CompareBin(ctx context.Context, store *edgestore.Store, bin *binning.Bin, gen pairgen.Generator, desired, cores int) (int, error) {
	if len(bin.Records) < 2 {
		log.Debug.Printf("schedule: bin %s has %d records, skipping", bin.Label, len(bin.Records))
		return 0, nil
	}
	if err := store.Ping(ctx); err != nil {
		return 0, errors.E(err, "schedule: bin "+bin.Label)
	}

	numPairs, err := gen.Count(ctx)
	if err != nil {
		return 0, errors.E(err, "schedule: count pairs for bin "+bin.Label)
	}
	if numPairs == 0 {
		log.Debug.Printf("schedule: bin %s has no pairs to score", bin.Label)
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	byID := make(map[int]*bgcmodel.Record, len(bin.Records))
	for _, r := range bin.Records {
		byID[r.ID] = r
	}

	batchSize := BatchSize(numPairs, desired, cores)
	numWorkers := NumWorkers(numPairs, cores)
	log.Debug.Printf("schedule: bin %s: %d pairs, batch size %d, %d workers",
		bin.Label, numPairs, batchSize, numWorkers)

	run := NewRun(ctx, gen, batchSize, numWorkers, func(ctx context.Context, pid pairgen.PairID) (interface{}, error) {
		a, okA := byID[pid.A]
		b, okB := byID[pid.B]
		if !okA || !okB {
			return nil, errors.E(errors.Invalid,
				"schedule: pair references a record outside bin "+bin.Label)
		}
		p, err := compare.NewPair(a, b)
		if err != nil {
			return nil, err
		}
		return compare.ScorePair(p, bin.Mode, bin.Profile, bin.ParamID, bin.Ext.MinLCSLen, bin.Ext), nil
	})

	written := 0
	pending := make([]edgestore.Edge, 0, batchSize)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := store.Insert(ctx, pending); err != nil {
			return errors.E(err, "schedule: write edges for bin "+bin.Label)
		}
		written += len(pending)
		pending = pending[:0]
		return nil
	}

	var writeErr error
	for result := range run.Results() {
		if writeErr != nil {
			continue // drain so workers can exit
		}
		pending = append(pending, result.(edgestore.Edge))
		if len(pending) >= batchSize {
			if writeErr = flush(); writeErr != nil {
				cancel()
			}
		}
	}
	if writeErr != nil {
		return written, writeErr
	}
	if err := run.Err(); err != nil {
		return written, errors.E(err, "schedule: score bin "+bin.Label)
	}
	if err := flush(); err != nil {
		return written, err
	}
	return written, nil
}
