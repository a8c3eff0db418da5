// Package schedule implements the batch scheduler: it groups a
// pair-generator's output into fixed-size batches and fans them out to a
// bounded pool of workers via traverse.Each, streaming scored results
// back to the caller and surfacing the first worker error.
package schedule

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/traverse"

	"github.com/grailbio/bgccompare/pairgen"
)

// BatchSize computes the per-batch pair count: the smaller of desired
// and ceil(numPairs/cores), clamped to at least 1.
func BatchSize(numPairs, desired, cores int) int {
	if cores < 1 {
		cores = 1
	}
	ceil := (numPairs + cores - 1) / cores
	size := desired
	if ceil < size {
		size = ceil
	}
	if size < 1 {
		size = 1
	}
	return size
}

// NumWorkers returns how many concurrent workers to run for numPairs
// pairs: cores, unless there are fewer pairs than cores, in which case
// one worker per pair.
func NumWorkers(numPairs, cores int) int {
	if cores < 1 {
		cores = 1
	}
	if numPairs < cores {
		if numPairs < 1 {
			return 1
		}
		return numPairs
	}
	return cores
}

// ScoreFunc scores a single pair, returning the result to stream back to
// the caller.
type ScoreFunc func(ctx context.Context, pair pairgen.PairID) (interface{}, error)

// Run batches pairs from gen's output into groups of BatchSize and scores
// them across NumWorkers goroutines. Results are streamed back on the
// returned channel in submission order within a batch; arrival order
// across batches is unspecified. On the first
// worker error the coordinator stops dispatching further batches and
// drains in-flight ones; the error is available from Err once the
// channel closes.
type Run struct {
	out chan interface{}
	err errors.Once
}

// NewRun starts the scheduler: it drains gen (a pairgen.Generator) into
// batches of the given size and scores them with score across numWorkers
// goroutines bounded by traverse.Each.
func NewRun(ctx context.Context, gen pairgen.Generator, batchSize, numWorkers int, score ScoreFunc) *Run {
	r := &Run{out: make(chan interface{})}

	ctx, cancel := context.WithCancel(ctx)
	batches := batchGenerator(ctx, gen, batchSize)

	go func() {
		defer cancel()
		defer close(r.out)

		err := traverse.Each(numWorkers, func(int) error {
			for batch := range batches {
				for _, pair := range batch {
					result, err := score(ctx, pair)
					if err != nil {
						cancel()
						return err
					}
					select {
					case r.out <- result:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			return nil
		})
		if err != nil {
			r.err.Set(err)
			cancel()
			return
		}
		if err := gen.Err(); err != nil {
			r.err.Set(err)
		}
	}()

	return r
}

// Results returns the channel of scored results. It closes once every
// batch has been processed or the run has failed.
func (r *Run) Results() <-chan interface{} { return r.out }

// Err returns the first error encountered by the generator or any worker,
// or nil. Valid only after Results' channel closes.
func (r *Run) Err() error { return r.err.Err() }

// batchGenerator groups gen's pairs into fixed-size batches on a
// background goroutine, closing the returned channel once gen is
// exhausted or ctx is done.
func batchGenerator(ctx context.Context, gen pairgen.Generator, batchSize int) <-chan []pairgen.PairID {
	out := make(chan []pairgen.PairID)
	go func() {
		defer close(out)
		batch := make([]pairgen.PairID, 0, batchSize)
		for pair := range gen.Generate(ctx) {
			batch = append(batch, pair)
			if len(batch) >= batchSize {
				select {
				case out <- batch:
				case <-ctx.Done():
					return
				}
				batch = make([]pairgen.PairID, 0, batchSize)
			}
		}
		if len(batch) > 0 {
			select {
			case out <- batch:
			case <-ctx.Done():
			}
		}
	}()
	return out
}
