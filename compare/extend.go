package compare

import "github.com/grailbio/bgccompare/weights"

// Extend grows p.Region's domain window outward from its LCS seed in both
// directions, using p's oriented domain sequences, then projects the
// result to CDS space. If the seed is shorter than params.MinLCSLen,
// extension is skipped. The walk is a synchronized 1:1 domain-position
// comparison on both sides, not a banded aligner.
func Extend(p *Pair, params weights.ExtendParams) {
	r := p.Region
	if r.LCSDomainAStop-r.LCSDomainAStart < params.MinLCSLen {
		return
	}
	bDomains := p.orientedBDomains()

	leftA, leftB := extendLeft(p.aDomains, bDomains, r.LCSDomainAStart, r.LCSDomainBStart, params)
	rightA, rightB := extendRight(p.aDomains, bDomains, r.LCSDomainAStop, r.LCSDomainBStop, params)

	r.DomainAStart, r.DomainAStop = leftA, rightA
	r.DomainBStart, r.DomainBStop = leftB, rightB

	projectExtendedWindowToCDS(p)
}

// extendLeft walks aStart/bStart down in lock-step while the running score
// stays >= 0 and the cumulative mismatch fraction stays within the cap,
// remembering the best-scoring stopping point reached so the walk can
// overshoot a transient dip without keeping it (X-drop style). A step
// shorter than MinExpandLen from the seed is rejected, falling back to
// the unextended boundary.
func extendLeft(a, b []string, aStart, bStart int, p weights.ExtendParams) (int, int) {
	origA, origB := aStart, bStart
	score, mismatches, steps := 0, 0, 0
	bestScore, bestA, bestB := 0, aStart, bStart

	for aStart > 0 && bStart > 0 {
		aStart--
		bStart--
		steps++
		if a[aStart] == b[bStart] {
			score += p.Match
		} else {
			score += p.Mismatch
			mismatches++
		}
		if score < 0 {
			break
		}
		if float64(mismatches)/float64(steps) > p.MaxMismatchFrac {
			break
		}
		if score > bestScore {
			bestScore = score
			bestA, bestB = aStart, bStart
		}
	}
	if origA-bestA < p.MinExpandLen {
		return origA, origB
	}
	return bestA, bestB
}

// extendRight is extendLeft's mirror, walking aStop/bStop upward.
func extendRight(a, b []string, aStop, bStop int, p weights.ExtendParams) (int, int) {
	origA, origB := aStop, bStop
	score, mismatches, steps := 0, 0, 0
	bestScore, bestA, bestB := 0, aStop, bStop
	n, m := len(a), len(b)

	for aStop < n && bStop < m {
		steps++
		if a[aStop] == b[bStop] {
			score += p.Match
		} else {
			score += p.Mismatch
			mismatches++
		}
		aStop++
		bStop++
		if score < 0 {
			break
		}
		if float64(mismatches)/float64(steps) > p.MaxMismatchFrac {
			break
		}
		if score > bestScore {
			bestScore = score
			bestA, bestB = aStop, bStop
		}
	}
	if bestA-origA < p.MinExpandLen {
		return origA, origB
	}
	return bestA, bestB
}

// projectExtendedWindowToCDS mirrors projectDomainWindowToCDS for the
// post-extension window.
func projectExtendedWindowToCDS(p *Pair) {
	r := p.Region
	r.AStart = p.aDomainToCDS[clampDomainIdx(r.DomainAStart, len(p.aDomainToCDS))]
	r.AStop = p.aDomainToCDS[clampDomainIdx(r.DomainAStop-1, len(p.aDomainToCDS))] + 1

	bMap := p.bDomainToCDS
	if r.Reverse {
		bMap = p.bDomainToCDSRev
	}
	r.BStart = bMap[clampDomainIdx(r.DomainBStart, len(bMap))]
	r.BStop = bMap[clampDomainIdx(r.DomainBStop-1, len(bMap))] + 1
	if r.BStop == r.BStart {
		r.BStop++
	}
}
