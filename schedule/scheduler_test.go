package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/bgccompare/pairgen"
)

func TestBatchSizeClampsToAtLeastOne(t *testing.T) {
	assert.Equal(t, 1, BatchSize(0, 10000, 4))
	assert.Equal(t, 10000, BatchSize(1000000, 10000, 1))
	assert.Equal(t, 25, BatchSize(100, 10000, 4))
}

func TestNumWorkersFewerPairsThanCores(t *testing.T) {
	assert.Equal(t, 3, NumWorkers(3, 8))
	assert.Equal(t, 8, NumWorkers(100, 8))
	assert.Equal(t, 1, NumWorkers(0, 8))
}

type fakeGen struct {
	pairs []pairgen.PairID
	err   error
}

func (g *fakeGen) Count(ctx context.Context) (int, error) { return len(g.pairs), nil }
func (g *fakeGen) Generate(ctx context.Context) <-chan pairgen.PairID {
	out := make(chan pairgen.PairID)
	go func() {
		defer close(out)
		for _, p := range g.pairs {
			select {
			case out <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
func (g *fakeGen) Err() error { return g.err }

func TestRunScoresEveryPair(t *testing.T) {
	gen := &fakeGen{pairs: []pairgen.PairID{{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3}, {A: 2, B: 4}}}
	run := NewRun(context.Background(), gen, 2, 2, func(ctx context.Context, p pairgen.PairID) (interface{}, error) {
		return p.A + p.B, nil
	})

	var total int
	for r := range run.Results() {
		total += r.(int)
	}
	require.NoError(t, run.Err())
	assert.Equal(t, (1+2)+(1+3)+(2+3)+(2+4), total)
}

func TestRunSurfacesFirstWorkerError(t *testing.T) {
	gen := &fakeGen{pairs: []pairgen.PairID{{A: 1, B: 2}, {A: 3, B: 4}}}
	boom := errors.New("boom")
	run := NewRun(context.Background(), gen, 1, 2, func(ctx context.Context, p pairgen.PairID) (interface{}, error) {
		if p.A == 1 {
			return nil, boom
		}
		return p.A, nil
	})

	for range run.Results() {
	}
	assert.Error(t, run.Err())
}

func TestRunSurfacesGeneratorError(t *testing.T) {
	boom := errors.New("generator failed")
	gen := &fakeGen{pairs: []pairgen.PairID{{A: 1, B: 2}}, err: boom}
	run := NewRun(context.Background(), gen, 10, 1, func(ctx context.Context, p pairgen.PairID) (interface{}, error) {
		return p.A, nil
	})
	for range run.Results() {
	}
	assert.True(t, errors.Is(run.Err(), boom))
}
