package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/weights"
)

func hsp(accession string) *bgcmodel.HSP {
	return &bgcmodel.HSP{Accession: accession}
}

func cds(kind string, hsps ...*bgcmodel.HSP) *bgcmodel.CDS {
	return &bgcmodel.CDS{GeneKind: kind, HSPs: hsps}
}

func region(id int, gbkID int, cdss ...*bgcmodel.CDS) *bgcmodel.Record {
	return &bgcmodel.Record{
		ID:     id,
		Kind:   bgcmodel.KindRegion,
		Parent: &bgcmodel.GBK{ID: gbkID, Path: "x.gbk"},
		CDS:    cdss,
	}
}

func TestFindLongestMatchPicksLeftmostOnTie(t *testing.T) {
	a := []string{"x", "y", "x", "y"}
	b := []string{"x", "y"}
	m := findLongestMatch(a, b, 0, len(a), 0, len(b))
	assert.Equal(t, 2, m.Len)
	assert.Equal(t, 0, m.AIdx)
	assert.Equal(t, 0, m.BIdx)
}

func TestAllMatchingBlocksCoversWholeSequence(t *testing.T) {
	a := []string{"p1", "p2", "p3"}
	b := []string{"p1", "q", "p3"}
	blocks := AllMatchingBlocks(a, b)
	var total int
	for _, blk := range blocks {
		total += blk.Len
	}
	assert.Equal(t, 2, total) // p1 and p3 match, q/p2 don't
}

func TestJaccardIdenticalSets(t *testing.T) {
	a := []string{"PF1", "PF2"}
	assert.Equal(t, 1.0, Jaccard(a, a))
}

func TestJaccardDisjointSets(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard([]string{"PF1"}, []string{"PF2"}))
}

func TestJaccardEmptyBothIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(nil, nil))
}

func TestAdjacencySharedPair(t *testing.T) {
	a := []string{"PF1", "PF2", "PF3"}
	b := []string{"PF1", "PF2"}
	// a has pairs {PF1,PF2},{PF2,PF3}; b has {PF1,PF2}. shared=1, union=2.
	assert.InDelta(t, 0.5, Adjacency(a, b), 1e-9)
}

func TestAlignedStringDistanceIgnoresSharedGaps(t *testing.T) {
	// positions: match, shared-gap (ignored), mismatch -> denom = 3-1=2, matches=1
	d := alignedStringDistance("A-B", "A-C")
	assert.InDelta(t, 0.5, d, 1e-9)
}

func TestAlignedStringDistanceAllGapsIsFullMiss(t *testing.T) {
	assert.Equal(t, 1.0, alignedStringDistance("--", "--"))
}

func TestDSSWithoutAlignmentsFallsBackToWorstDistance(t *testing.T) {
	h1, h2 := hsp("PF1"), hsp("PF2")
	dss := DSS([]*bgcmodel.HSP{h1, h2}, []*bgcmodel.HSP{h1, h2}, 2.0)
	// No alignments set, so each shared domain contributes the worst
	// per-hit distance (1.0) rather than zero.
	assert.InDelta(t, 1.0, dss, 1e-9)
}

func TestDSSIdenticalAlignmentsIsZero(t *testing.T) {
	mk := func(acc string) *bgcmodel.HSP {
		return &bgcmodel.HSP{Accession: acc, Alignment: &bgcmodel.Alignment{Seq: "MKL-V"}}
	}
	dss := DSS([]*bgcmodel.HSP{mk("PF1"), mk("PF2")}, []*bgcmodel.HSP{mk("PF1"), mk("PF2")}, 2.0)
	assert.InDelta(t, 0.0, dss, 1e-9)
}

// Swapping A and B yields the same JC, AI, and DSS.
func TestMetricsAreSymmetric(t *testing.T) {
	a := []string{"PF1", "PF2", "PF2", "PF3"}
	b := []string{"PF2", "PF3", "PF4"}
	assert.InDelta(t, Jaccard(a, b), Jaccard(b, a), 1e-9)
	assert.InDelta(t, Adjacency(a, b), Adjacency(b, a), 1e-9)

	mk := func(acc, seq string) *bgcmodel.HSP {
		return &bgcmodel.HSP{Accession: acc, Alignment: &bgcmodel.Alignment{Seq: seq}}
	}
	aHSPs := []*bgcmodel.HSP{mk("PF1", "MKLV"), mk("PF2", "MA-V")}
	bHSPs := []*bgcmodel.HSP{mk("PF2", "MAGV"), mk("PF3", "MKLV")}
	assert.InDelta(t, DSS(aHSPs, bHSPs, 2.0), DSS(bHSPs, aHSPs, 2.0), 1e-9)
}

func TestDSSUnsharedDomainsSplitByAnchor(t *testing.T) {
	// PF02801 is a legacy anchor domain (weights.AnchorDomains).
	aHSPs := []*bgcmodel.HSP{hsp("PF02801")}
	bHSPs := []*bgcmodel.HSP{hsp("PF99999")}
	dss := DSS(aHSPs, bHSPs, 4.0)
	// anchorCount=1 (PF02801), nonAnchorCount=1 (PF99999)
	// total = 1*4.0 + 1*1.0 = 5.0; denom = 1*4.0 + 1 = 5.0 -> dss = 1.0
	assert.InDelta(t, 1.0, dss, 1e-9)
}

func TestCompositeDistanceIsOneMinusSimilarity(t *testing.T) {
	p := weights.Profile{JC: 0.5, AI: 0.5, DSS: 0}
	d := Composite(1.0, 1.0, 0.0, p)
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestSeedLCSForwardMatch(t *testing.T) {
	a := region(1, 1, cds("", hsp("PF1")), cds("", hsp("PF2")), cds("", hsp("PF3")))
	b := region(2, 2, cds("", hsp("PF1")), cds("", hsp("PF2")))
	p, err := NewPair(a, b)
	require.NoError(t, err)

	SeedLCS(p)
	assert.False(t, p.Region.Reverse)
	assert.Equal(t, 0, p.Region.LCSDomainAStart)
	assert.Equal(t, 2, p.Region.LCSDomainAStop)
}

func TestSeedLCSPrefersReverseWhenLonger(t *testing.T) {
	a := region(1, 1, cds("", hsp("PF1")), cds("", hsp("PF2")), cds("", hsp("PF3")))
	// B's domains reversed match A's first three exactly; forward matching
	// finds only length-1 blocks, reverse match covers all 3.
	b := region(2, 2, cds("", hsp("PF3")), cds("", hsp("PF2")), cds("", hsp("PF1")))
	p, err := NewPair(a, b)
	require.NoError(t, err)

	SeedLCS(p)
	assert.True(t, p.Region.Reverse)
	assert.Equal(t, 3, p.Region.LCSDomainAStop-p.Region.LCSDomainAStart)
}

func TestSeedLCSPrefersBiosyntheticBlockOverLongerNonBio(t *testing.T) {
	// A length-2 non-biosynthetic block competes with a length-1
	// biosynthetic block; the biosynthetic block must win even though it
	// is shorter.
	a := region(1, 1,
		cds("", hsp("P1")), cds("", hsp("P2")), cds("", hsp("X1")),
		cds(bgcmodel.GeneKindBiosynthetic, hsp("BIO")))
	b := region(2, 2,
		cds("", hsp("P1")), cds("", hsp("P2")), cds("", hsp("Y1")),
		cds(bgcmodel.GeneKindBiosynthetic, hsp("BIO")))
	p, err := NewPair(a, b)
	require.NoError(t, err)

	SeedLCS(p)
	assert.False(t, p.Region.Reverse)
	assert.Equal(t, 3, p.Region.LCSDomainAStart)
	assert.Equal(t, 4, p.Region.LCSDomainAStop)
}

func TestExtendGrowsWindowOnMatchingFlanks(t *testing.T) {
	domains := []string{"PF1", "PF2", "PF3", "PF4", "PF5", "PF6",
		"PF7", "PF8", "PF9", "PF10", "PF11", "PF12", "PF13", "PF14"}
	a := region(1, 1, cdsFromDomains(domains)...)
	b := region(2, 2, cdsFromDomains(domains)...)
	p, err := NewPair(a, b)
	require.NoError(t, err)

	// Seed a length-3 interior window manually instead of relying on LCS
	// (MinLCSLen=3 is required for Extend to run at all). The left flank
	// has exactly MinExpandLen (5) matching positions available and the
	// right flank 6, so both clear the extender's minimum-extension guard.
	p.Region.LCSDomainAStart, p.Region.LCSDomainAStop = 5, 8
	p.Region.LCSDomainBStart, p.Region.LCSDomainBStop = 5, 8
	p.Region.DomainAStart, p.Region.DomainAStop = 5, 8
	p.Region.DomainBStart, p.Region.DomainBStop = 5, 8

	Extend(p, weights.DefaultExtendParams)
	assert.Equal(t, 0, p.Region.DomainAStart)
	assert.Equal(t, len(domains), p.Region.DomainAStop)
}

func cdsFromDomains(domains []string) []*bgcmodel.CDS {
	out := make([]*bgcmodel.CDS, len(domains))
	for i, d := range domains {
		out[i] = cds("", hsp(d))
	}
	return out
}

func TestScorePairZeroJaccardEmitsDefaultEdge(t *testing.T) {
	a := region(1, 1, cds("", hsp("PF1")))
	b := region(2, 2, cds("", hsp("PF2")))
	p, err := NewPair(a, b)
	require.NoError(t, err)

	edge := ScorePair(p, weights.Local, weights.MixProfile, weights.EdgeParamID(42), 0, weights.DefaultExtendParams)
	assert.Equal(t, 1.0, edge.Distance)
	assert.Equal(t, 0.0, edge.Jaccard)
}

func TestScorePairIdenticalRecordsIsMaximallySimilar(t *testing.T) {
	domains := []string{"PF1", "PF2", "PF3"}
	a := region(1, 1, cdsFromDomains(domains)...)
	b := region(2, 2, cdsFromDomains(domains)...)
	p, err := NewPair(a, b)
	require.NoError(t, err)

	edge := ScorePair(p, weights.Global, weights.MixProfile, weights.EdgeParamID(1), 0, weights.DefaultExtendParams)
	assert.InDelta(t, 1.0, edge.Jaccard, 1e-9)
	assert.InDelta(t, 1.0, edge.Adjacency, 1e-9)
}

func TestNewPairRejectsRecordWithoutParent(t *testing.T) {
	a := &bgcmodel.Record{ID: 1}
	b := region(2, 2, cds("", hsp("PF1")))
	_, err := NewPair(a, b)
	assert.Error(t, err)
}

func TestPairEqualIsOrderIndependent(t *testing.T) {
	a := region(1, 1, cds("", hsp("PF1")))
	b := region(2, 2, cds("", hsp("PF2")))
	p1, err := NewPair(a, b)
	require.NoError(t, err)
	p2, err := NewPair(b, a)
	require.NoError(t, err)
	assert.True(t, p1.Equal(p2))
}

func TestCheckRejectsWindowShorterThanMinLen(t *testing.T) {
	cr := NewComparableRegion(5, 5, 5, 5)
	cr.AStart, cr.AStop = 0, 1
	cr.BStart, cr.BStop = 0, 1
	a := region(1, 1, cdsFromDomains([]string{"PF1"})...)
	b := region(2, 2, cdsFromDomains([]string{"PF1"})...)
	assert.False(t, cr.Check(3, false, a, b))
}

func TestDSSSymmetricWithUnevenCopyNumbers(t *testing.T) {
	mk := func(acc, seq string) *bgcmodel.HSP {
		return &bgcmodel.HSP{Accession: acc, Alignment: &bgcmodel.Alignment{Seq: seq}}
	}
	aHSPs := []*bgcmodel.HSP{mk("PF1", "MKLV"), mk("PF1", "MALV")}
	bHSPs := []*bgcmodel.HSP{mk("PF1", "MKLV")}
	assert.InDelta(t, DSS(aHSPs, bHSPs, 1.0), DSS(bHSPs, aHSPs, 1.0), 1e-9)
	// One copy matches exactly (distance 0), the surplus copy is a full
	// miss: (0 + 1) / 2.
	assert.InDelta(t, 0.5, DSS(aHSPs, bHSPs, 1.0), 1e-9)
}

// B is A reversed, so the reverse-direction LCS wins and Jaccard stays
// 1.0.
func TestScorePairReverseTandem(t *testing.T) {
	a := region(1, 1, cdsFromDomains([]string{"P1", "P2", "P3"})...)
	b := region(2, 2, cdsFromDomains([]string{"P3", "P2", "P1"})...)
	p, err := NewPair(a, b)
	require.NoError(t, err)

	edge := ScorePair(p, weights.Global, weights.MixProfile, weights.EdgeParamID(1), 0, weights.DefaultExtendParams)
	assert.True(t, edge.Reverse)
	assert.InDelta(t, 1.0, edge.Jaccard, 1e-9)
}

// After Inflate, the emitted window spans boundary CDS without domains
// and still contains the LCS window, all in full-CDS-list coordinates.
func TestInflateWidensOverDomainlessBoundaries(t *testing.T) {
	cr := NewComparableRegion(2, 2, 2, 2)
	cdsMap := []int{1, 2}
	hasDomains := []bool{false, true, true, false}

	cr.Inflate(cdsMap, cdsMap, hasDomains, hasDomains)
	assert.Equal(t, 0, cr.AStart)
	assert.Equal(t, 4, cr.AStop)
	assert.Equal(t, 1, cr.LCSAStart)
	assert.Equal(t, 3, cr.LCSAStop)
	assert.True(t, cr.AStart <= cr.LCSAStart && cr.LCSAStart <= cr.LCSAStop && cr.LCSAStop <= cr.AStop)
	assert.Equal(t, 0, cr.BStart)
	assert.Equal(t, 4, cr.BStop)
}

func TestResetRestoresFullRange(t *testing.T) {
	cr := NewComparableRegion(5, 4, 5, 4)
	cr.AStart, cr.AStop = 1, 2
	cr.Reverse = true
	cr.Reset()
	assert.Equal(t, 0, cr.AStart)
	assert.Equal(t, 5, cr.AStop)
	assert.False(t, cr.Reverse)
}
