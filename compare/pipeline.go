package compare

import (
	"github.com/grailbio/bgccompare/edgestore"
	"github.com/grailbio/bgccompare/weights"
)

// ScorePair runs the full per-pair pipeline: Jaccard early-exit, LCS
// seed, conditional extension, re-validate-or-reset, AI/DSS scoring, and
// window inflation. profile, mode, extendParams and paramID are normally
// resolved once per bin (weights.Resolve) and shared across every pair
// scored in it.
func ScorePair(p *Pair, mode weights.AlignmentMode, profile weights.Profile, paramID weights.EdgeParamID, minCheckLen int, extendParams weights.ExtendParams) edgestore.Edge {
	// Step 1: full-range Jaccard early exit.
	if Jaccard(p.aDomains, p.orientedBDomains()) == 0 {
		return emitEdge(p, paramID, 1.0, 0, 0, 0)
	}

	// Step 2: seed, then extend per alignment mode.
	SeedLCS(p)
	switch mode {
	case weights.Glocal:
		Extend(p, extendParams)
	case weights.Local:
		Extend(p, extendParams)
		if !p.Region.Check(minCheckLen, true, p.A, p.B) {
			p.Region.Reset()
		}
	case weights.Global:
		// no extension; the seed window alone is scored.
	}

	// Step 3: if the current window is degenerate, reset and recheck
	// Jaccard on the full range.
	aWin, bWin := windowDomains(p)
	if Jaccard(aWin, bWin) == 0 {
		p.Region.Reset()
		aWin, bWin = windowDomains(p)
		if Jaccard(aWin, bWin) == 0 {
			return emitEdge(p, paramID, 1.0, 0, 0, 0)
		}
	}

	// Step 4: AI and DSS over the (possibly re-validated) window.
	jc := Jaccard(aWin, bWin)
	ai := Adjacency(aWin, bWin)
	aHSPs, bHSPs := windowHSPs(p)
	dss := DSS(aHSPs, bHSPs, profile.AnchorBoost)
	distance := Composite(jc, ai, dss, profile)

	// Step 5: inflate the CDS-space window to include boundary
	// non-domain CDS.
	p.Region.Inflate(p.A.CDSWithDomainsIndexMap(), p.B.CDSWithDomainsIndexMap(), p.A.CDSHasDomains(), p.B.CDSHasDomains())

	return emitEdge(p, paramID, distance, jc, ai, dss)
}

func emitEdge(p *Pair, paramID weights.EdgeParamID, distance, jc, ai, dss float64) edgestore.Edge {
	r := p.Region
	return edgestore.Edge{
		RecordAID: p.A.ID, RecordBID: p.B.ID,
		Distance: distance, Jaccard: jc, Adjacency: ai, DSS: dss,
		EdgeParamID: int64(paramID),
		LCSAStart:   r.LCSAStart, LCSAStop: r.LCSAStop,
		LCSBStart: r.LCSBStart, LCSBStop: r.LCSBStop,
		ExtAStart: r.AStart, ExtAStop: r.AStop,
		ExtBStart: r.BStart, ExtBStop: r.BStop,
		Reverse: r.Reverse,
	}
}
