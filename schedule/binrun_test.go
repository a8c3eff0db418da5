package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/binning"
	"github.com/grailbio/bgccompare/edgestore"
	"github.com/grailbio/bgccompare/pairgen"
	"github.com/grailbio/bgccompare/weights"
)

func alignedRecord(id, gbkID int, domains []string) *bgcmodel.Record {
	cdss := make([]*bgcmodel.CDS, len(domains))
	for i, d := range domains {
		cdss[i] = &bgcmodel.CDS{HSPs: []*bgcmodel.HSP{{
			Accession: d,
			Alignment: &bgcmodel.Alignment{Seq: "MKLVNN"},
		}}}
	}
	return &bgcmodel.Record{
		ID:     id,
		Kind:   bgcmodel.KindRegion,
		Parent: &bgcmodel.GBK{ID: gbkID, Path: "x.gbk"},
		CDS:    cdss,
	}
}

// Two records with the same domains and identical alignments score
// distance 0, and the edge lands in the store under the bin's edge-param
// id.
func TestCompareBinIdenticalRecords(t *testing.T) {
	ctx := context.Background()
	store, err := edgestore.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	records := []*bgcmodel.Record{
		alignedRecord(1, 1, []string{"PF1", "PF2", "PF3"}),
		alignedRecord(2, 2, []string{"PF1", "PF2", "PF3"}),
	}
	bin, err := binning.Mix(records, weights.Local, weights.DefaultExtendParams)
	require.NoError(t, err)

	written, err := CompareBin(ctx, store, bin, pairgen.NewAllVsAll(bin.Records, false), DefaultDesiredBatch, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	edges, err := store.ComponentEdges(ctx, int64(bin.ParamID), []int{1, 2})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.InDelta(t, 0.0, edges[0].Distance, 1e-9)
	assert.InDelta(t, 1.0, edges[0].Jaccard, 1e-9)
	assert.InDelta(t, 1.0, edges[0].Adjacency, 1e-9)
	assert.InDelta(t, 0.0, edges[0].DSS, 1e-9)
	assert.False(t, edges[0].Reverse)
}

// Fully disjoint domain sets take the early-exit path and persist
// (1, 0, 0, 0).
func TestCompareBinDisjointRecords(t *testing.T) {
	ctx := context.Background()
	store, err := edgestore.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	records := []*bgcmodel.Record{
		alignedRecord(1, 1, []string{"PF1", "PF2", "PF3"}),
		alignedRecord(2, 2, []string{"PF4", "PF5", "PF6"}),
	}
	bin, err := binning.Mix(records, weights.Local, weights.DefaultExtendParams)
	require.NoError(t, err)

	written, err := CompareBin(ctx, store, bin, pairgen.NewAllVsAll(bin.Records, false), DefaultDesiredBatch, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	edges, err := store.ComponentEdges(ctx, int64(bin.ParamID), []int{1, 2})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 1.0, edges[0].Distance)
	assert.Equal(t, 0.0, edges[0].Jaccard)
	assert.Equal(t, 0.0, edges[0].Adjacency)
	assert.Equal(t, 0.0, edges[0].DSS)
}

func TestCompareBinSkipsUndersizedBin(t *testing.T) {
	ctx := context.Background()
	store, err := edgestore.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	records := []*bgcmodel.Record{alignedRecord(1, 1, []string{"PF1"})}
	bin, err := binning.Mix(records, weights.Local, weights.DefaultExtendParams)
	require.NoError(t, err)

	written, err := CompareBin(ctx, store, bin, pairgen.NewAllVsAll(bin.Records, false), DefaultDesiredBatch, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
}

// TestCompareBinWithMissingOnlySkipsStoredPairs wires the missing-only
// wrapper through the coordinator: a second run over the same bin scores
// nothing because every pair is already persisted.
func TestCompareBinWithMissingOnlySkipsStoredPairs(t *testing.T) {
	ctx := context.Background()
	store, err := edgestore.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	records := []*bgcmodel.Record{
		alignedRecord(1, 1, []string{"PF1", "PF2"}),
		alignedRecord(2, 2, []string{"PF1", "PF2"}),
		alignedRecord(3, 3, []string{"PF1", "PF3"}),
	}
	bin, err := binning.Mix(records, weights.Local, weights.DefaultExtendParams)
	require.NoError(t, err)

	gen := pairgen.NewMissingOnly(
		pairgen.NewAllVsAll(bin.Records, false), store, int64(bin.ParamID), bin.RecordIDs())
	written, err := CompareBin(ctx, store, bin, gen, DefaultDesiredBatch, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	gen = pairgen.NewMissingOnly(
		pairgen.NewAllVsAll(bin.Records, false), store, int64(bin.ParamID), bin.RecordIDs())
	written, err = CompareBin(ctx, store, bin, gen, DefaultDesiredBatch, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
}
