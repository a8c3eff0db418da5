package compare

import (
	"sort"

	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/weights"
)

// windowDomains returns the domain accessions of a/b within the region's
// current domain-space window, B in its current traversal orientation.
func windowDomains(p *Pair) (a, b []string) {
	r := p.Region
	aStart, aStop := clampStop(r.DomainAStart, len(p.aDomains)), clampStop(r.DomainAStop, len(p.aDomains))
	if aStop < aStart {
		aStop = aStart
	}
	a = p.aDomains[aStart:aStop]

	bAll := p.orientedBDomains()
	bStart, bStop := clampStop(r.DomainBStart, len(bAll)), clampStop(r.DomainBStop, len(bAll))
	if bStop < bStart {
		bStop = bStart
	}
	b = bAll[bStart:bStop]
	return a, b
}

func clampStop(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// windowHSPs returns the domain HSPs of a/b within the region's current
// domain-space window, aligned 1:1 with windowDomains, B in its current
// traversal orientation.
func windowHSPs(p *Pair) (a, b []*bgcmodel.HSP) {
	r := p.Region
	aAll := p.A.DomainHSPs()
	aStart, aStop := clampStop(r.DomainAStart, len(aAll)), clampStop(r.DomainAStop, len(aAll))
	if aStop < aStart {
		aStop = aStart
	}
	a = aAll[aStart:aStop]

	bAll := p.orientedBHSPs()
	bStart, bStop := clampStop(r.DomainBStart, len(bAll)), clampStop(r.DomainBStop, len(bAll))
	if bStop < bStart {
		bStop = bStart
	}
	b = bAll[bStart:bStop]
	return a, b
}

// Jaccard computes the multiset-intersection Jaccard index over the
// window's domain accessions.
func Jaccard(a, b []string) float64 {
	ca := counts(a)
	cb := counts(b)
	var inter, union int
	seen := map[string]bool{}
	for acc, na := range ca {
		seen[acc] = true
		nb := cb[acc]
		if na < nb {
			inter += na
		} else {
			inter += nb
		}
		if na > nb {
			union += na
		} else {
			union += nb
		}
	}
	for acc, nb := range cb {
		if seen[acc] {
			continue
		}
		union += nb
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func counts(domains []string) map[string]int {
	out := map[string]int{}
	for _, d := range domains {
		out[d]++
	}
	return out
}

// adjacentPairs returns the set of unordered accession tuples found on
// consecutive positions of domains, each rendered as "lo|hi" (sorted by
// string) to use as a map key.
func adjacentPairs(domains []string) map[string]bool {
	out := map[string]bool{}
	for i := 0; i+1 < len(domains); i++ {
		a, b := domains[i], domains[i+1]
		if a > b {
			a, b = b, a
		}
		out[a+"|"+b] = true
	}
	return out
}

// Adjacency computes the adjacency index over the window's consecutive
// accession pairs: the fraction of shared adjacent-domain pairs over the
// union of both sides' adjacent-domain pairs.
func Adjacency(a, b []string) float64 {
	pa := adjacentPairs(a)
	pb := adjacentPairs(b)
	if len(pa) == 0 && len(pb) == 0 {
		return 0
	}
	var shared int
	for k := range pa {
		if pb[k] {
			shared++
		}
	}
	union := len(pa) + len(pb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// DSS computes the domain-sequence-similarity distance over the window.
// Unshared accessions add 1.0 per occurrence to the anchor or non-anchor
// bucket; shared accessions contribute their hits' greedily best-matched
// aligned-string distances, with surplus copies counted as full misses.
// anchorBoost scales the anchor component before the two buckets are
// summed and normalized by occurrence count.
func DSS(aHSPs, bHSPs []*bgcmodel.HSP, anchorBoost float64) float64 {
	aByAcc := groupByAccession(aHSPs)
	bByAcc := groupByAccession(bHSPs)

	var distAnchor, distNonAnchor float64
	var anchorCount, nonAnchorCount int

	seen := map[string]bool{}
	for acc, aHits := range aByAcc {
		seen[acc] = true
		bHits, shared := bByAcc[acc]
		if !shared {
			addUnshared(acc, len(aHits), &distAnchor, &distNonAnchor, &anchorCount, &nonAnchorCount)
			continue
		}
		d, n := sharedDomainDistance(aHits, bHits)
		addShared(acc, d, n, &distAnchor, &distNonAnchor, &anchorCount, &nonAnchorCount)
	}
	for acc, bHits := range bByAcc {
		if seen[acc] {
			continue
		}
		addUnshared(acc, len(bHits), &distAnchor, &distNonAnchor, &anchorCount, &nonAnchorCount)
	}

	if anchorCount == 0 && nonAnchorCount == 0 {
		return 0
	}
	total := distAnchor*anchorBoost + distNonAnchor
	denom := float64(anchorCount)*anchorBoost + float64(nonAnchorCount)
	if denom == 0 {
		return 0
	}
	return total / denom
}

func addUnshared(acc string, n int, distAnchor, distNonAnchor *float64, anchorCount, nonAnchorCount *int) {
	if weights.IsAnchor(acc) {
		*distAnchor += float64(n)
		*anchorCount += n
	} else {
		*distNonAnchor += float64(n)
		*nonAnchorCount += n
	}
}

func addShared(acc string, dist float64, n int, distAnchor, distNonAnchor *float64, anchorCount, nonAnchorCount *int) {
	if weights.IsAnchor(acc) {
		*distAnchor += dist
		*anchorCount += n
	} else {
		*distNonAnchor += dist
		*nonAnchorCount += n
	}
}

// sharedDomainDistance matches A-side and B-side hits of one shared
// accession one-to-one, greedily by lowest aligned-string distance, and
// sums the matched distances. Hits left over on either side (copy-number
// surplus, or hits with no comparable alignment) each count as a full 1.0
// miss, so the result is symmetric in A and B. Returns the summed distance
// and the number of occurrences it covers.
func sharedDomainDistance(aHits, bHits []*bgcmodel.HSP) (float64, int) {
	type cand struct {
		a, b int
		d    float64
	}
	var cands []cand
	for i, ah := range aHits {
		for j, bh := range bHits {
			if ah.Alignment == nil || bh.Alignment == nil || ah.Alignment.Len() != bh.Alignment.Len() {
				continue
			}
			cands = append(cands, cand{i, j, alignedStringDistance(ah.Alignment.Seq, bh.Alignment.Seq)})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].d < cands[j].d })

	usedA := make([]bool, len(aHits))
	usedB := make([]bool, len(bHits))
	matched := 0
	var sum float64
	for _, c := range cands {
		if usedA[c.a] || usedB[c.b] {
			continue
		}
		usedA[c.a], usedB[c.b] = true, true
		matched++
		sum += c.d
	}
	unmatched := len(aHits) + len(bHits) - 2*matched
	sum += float64(unmatched)
	return sum, matched + unmatched
}

// alignedStringDistance compares two equal-length aligned strings: equal
// positions that are both gaps are ignored; other equal positions are
// matches; everything else (including mismatched gap/non-gap) counts
// against the denominator. Callers must ensure equal length.
func alignedStringDistance(a, b string) float64 {
	var matches, gaps int
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			if a[i] == '-' {
				gaps++
			} else {
				matches++
			}
		}
	}
	denom := len(a) - gaps
	if denom <= 0 {
		return 1
	}
	return 1 - float64(matches)/float64(denom)
}

func groupByAccession(hsps []*bgcmodel.HSP) map[string][]*bgcmodel.HSP {
	out := map[string][]*bgcmodel.HSP{}
	for _, h := range hsps {
		out[h.Accession] = append(out[h.Accession], h)
	}
	return out
}

// Composite combines the three sub-scores into the final distance:
// distance = 1 - (w_JC*JC + w_AI*AI + w_DSS*(1-DSS)).
func Composite(jc, ai, dss float64, p weights.Profile) float64 {
	similarity := p.JC*jc + p.AI*ai + p.DSS*(1-dss)
	return 1 - similarity
}
