package compare

import "github.com/grailbio/base/log"

// SeedLCS finds the LCS seed window for p and writes it into p.Region,
// projecting the domain-space window to CDS space and setting Reverse.
// Most pairs use the general longest-match rule with the biosynthetic
// preference; pairs of ProtoCluster records instead prefer blocks
// intersecting both sides' protocore domains.
func SeedLCS(p *Pair) {
	// The pipeline's Jaccard prefilter guarantees a shared domain exists
	// before seeding; both sequences empty here means an upstream contract
	// was violated.
	if len(p.aDomains) == 0 && len(p.bDomains) == 0 {
		log.Panicf("compare: LCS seed on empty domain sequences: %s vs %s", p.A, p.B)
	}
	bRev := reverseStrings(p.bDomains)

	fwd := findLongestMatch(p.aDomains, p.bDomains, 0, len(p.aDomains), 0, len(p.bDomains))
	rev := findLongestMatch(p.aDomains, bRev, 0, len(p.aDomains), 0, len(bRev))

	var aStart, aStop, bStart, bStop int
	var reverse bool

	fwdBlocks := matchingBlocks(p.aDomains, p.bDomains, 0, len(p.aDomains), 0, len(p.bDomains))
	revBlocks := matchingBlocks(p.aDomains, bRev, 0, len(p.aDomains), 0, len(bRev))

	if p.A.IsProtoCluster() && p.B.IsProtoCluster() {
		aStart, aStop, bStart, bStop, reverse = seedProtocluster(p, fwdBlocks, revBlocks, fwd.Len, rev.Len)
	} else {
		aStart, aStop, bStart, bStop, reverse = seedGeneral(p, fwdBlocks, revBlocks)
	}

	// Seeds report B windows in natural orientation (the biosynthetic and
	// protocore index tests need that); a reverse window is carried in the
	// reversed coordinate system from here on.
	if reverse {
		bStart, bStop = len(p.bDomains)-bStop, len(p.bDomains)-bStart
	}

	p.Region.Reverse = reverse
	p.Region.LCSDomainAStart, p.Region.LCSDomainAStop = aStart, aStop
	p.Region.LCSDomainBStart, p.Region.LCSDomainBStop = bStart, bStop
	p.Region.DomainAStart, p.Region.DomainAStop = aStart, aStop
	p.Region.DomainBStart, p.Region.DomainBStop = bStart, bStop

	projectDomainWindowToCDS(p)
}

// blockCandidate is a matching block projected to its natural-orientation
// window on both sides, tagged with which direction it was found in.
type blockCandidate struct {
	aStart, aStop int
	bStart, bStop int
	reverse       bool
}

// collectCandidates turns fwdBlocks/revBlocks (the latter computed against
// B's reversed domain list) into a single list of candidates, all windows
// expressed in natural domain space on both sides, forward blocks first so
// insertion order ties resolve forward-before-reverse.
func collectCandidates(p *Pair, fwdBlocks, revBlocks []Block) []blockCandidate {
	bLen := len(p.bDomains)
	cands := make([]blockCandidate, 0, len(fwdBlocks)+len(revBlocks))
	for _, b := range fwdBlocks {
		if b.Len == 0 {
			continue
		}
		cands = append(cands, blockCandidate{
			aStart: b.AIdx, aStop: b.AIdx + b.Len,
			bStart: b.BIdx, bStop: b.BIdx + b.Len,
		})
	}
	for _, b := range revBlocks {
		if b.Len == 0 {
			continue
		}
		bStart := bLen - b.BIdx - b.Len
		cands = append(cands, blockCandidate{
			aStart: b.AIdx, aStop: b.AIdx + b.Len,
			bStart: bStart, bStop: bStart + b.Len,
			reverse: true,
		})
	}
	return cands
}

// seedGeneral partitions every forward+reverse matching block into those
// whose A-window or B-window intersects a biosynthetic CDS and the rest;
// the biosynthetic partition is preferred whenever it is non-empty.
// Within the chosen partition the longest block wins outright if it is
// unique; otherwise ties are broken by distance from the shorter side's
// CDS-with-domains midpoint to the block's matched domain, and any
// remaining tie keeps forward before reverse (insertion order).
func seedGeneral(p *Pair, fwdBlocks, revBlocks []Block) (aStart, aStop, bStart, bStop int, reverse bool) {
	cands := collectCandidates(p, fwdBlocks, revBlocks)

	aBio := p.A.BiosyntheticDomainIndex()
	bBio := p.B.BiosyntheticDomainIndex()

	pool := make([]blockCandidate, 0, len(cands))
	for _, c := range cands {
		if rangeIntersects(aBio, c.aStart, c.aStop) || rangeIntersects(bBio, c.bStart, c.bStop) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = cands
	}

	return pickCandidate(p, pool)
}

// pickCandidate picks the longest candidate in pool, breaking ties by
// centrality and then by insertion order.
func pickCandidate(p *Pair, pool []blockCandidate) (aStart, aStop, bStart, bStop int, reverse bool) {
	maxLen := -1
	for _, c := range pool {
		if l := c.aStop - c.aStart; l > maxLen {
			maxLen = l
		}
	}

	tied := make([]blockCandidate, 0, len(pool))
	for _, c := range pool {
		if c.aStop-c.aStart == maxLen {
			tied = append(tied, c)
		}
	}
	if len(tied) == 1 {
		c := tied[0]
		return c.aStart, c.aStop, c.bStart, c.bStop, c.reverse
	}
	return centeredCandidate(p, tied)
}

// centeredCandidate picks, among candidates, the one whose matched domain
// on the shorter-CDS side sits closest to that side's CDS-with-domains
// midpoint, keeping the first (lowest index, i.e. forward before reverse)
// on a further tie.
func centeredCandidate(p *Pair, cands []blockCandidate) (aStart, aStop, bStart, bStop int, reverse bool) {
	aCDSLen := len(p.A.CDSWithDomains())
	bCDSLen := len(p.B.CDSWithDomains())
	useA := aCDSLen <= bCDSLen
	cdsLen := aCDSLen
	domainToCDS := p.aDomainToCDS
	if !useA {
		cdsLen = bCDSLen
		domainToCDS = p.bDomainToCDS
	}
	middle := float64(cdsLen) / 2

	best := -1.0
	found := false
	for _, c := range cands {
		idx := c.aStart
		if !useA {
			idx = c.bStart
		}
		cdsIdx := domainToCDS[idx]
		dist := middle - float64(cdsIdx)
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < best {
			found = true
			best = dist
			aStart, aStop = c.aStart, c.aStop
			bStart, bStop = c.bStart, c.bStop
			reverse = c.reverse
		}
	}
	return aStart, aStop, bStart, bStop, reverse
}

// seedProtocluster prefers a block (in either orientation) that
// intersects both sides' protocore domains, falling back to the plain
// longest-match rule when neither orientation has one.
func seedProtocluster(p *Pair, fwdBlocks, revBlocks []Block, fwdLen, revLen int) (aStart, aStop, bStart, bStop int, reverse bool) {
	fa, fb, fok := protocoreBlock(p, fwdBlocks, false)
	ra, rb, rok := protocoreBlock(p, revBlocks, true)

	switch {
	case fok && rok:
		if (fa[1] - fa[0]) >= (ra[1] - ra[0]) {
			return fa[0], fa[1], fb[0], fb[1], false
		}
		return ra[0], ra[1], rb[0], rb[1], true
	case fok:
		return fa[0], fa[1], fb[0], fb[1], false
	case rok:
		return ra[0], ra[1], rb[0], rb[1], true
	}

	if fwdLen >= revLen {
		block := bestOf(fwdBlocks)
		return block.AIdx, block.AIdx + block.Len, block.BIdx, block.BIdx + block.Len, false
	}
	block := bestOf(revBlocks)
	bRevLen := len(p.bDomains)
	return block.AIdx, block.AIdx + block.Len, bRevLen - block.BIdx - block.Len, bRevLen - block.BIdx, true
}

// bestOf returns the longest block in blocks, first on ties.
func bestOf(blocks []Block) Block {
	var best Block
	for _, b := range blocks {
		if b.Len > best.Len {
			best = b
		}
	}
	return best
}

// protocoreBlock walks blocks looking for the first one that intersects
// both sides' protocore domain index, returning it immediately (first hit
// wins). blocksReverse indicates blocks were computed against B's
// reversed domain list, so BIdx needs unflipping before indexing B's
// natural-orientation protocore set.
func protocoreBlock(p *Pair, blocks []Block, blocksReverse bool) (aRange, bRange [2]int, hit bool) {
	aProtoCore := p.A.ProtoCoreDomainIndex()
	bProtoCore := p.B.ProtoCoreDomainIndex()
	bLen := len(p.bDomains)

	for _, blk := range blocks {
		if blk.Len == 0 {
			continue
		}
		bIdx := blk.BIdx
		if blocksReverse {
			bIdx = bLen - blk.BIdx - blk.Len
		}
		if rangeIntersects(aProtoCore, blk.AIdx, blk.AIdx+blk.Len) &&
			rangeIntersects(bProtoCore, bIdx, bIdx+blk.Len) {
			return [2]int{blk.AIdx, blk.AIdx + blk.Len}, [2]int{bIdx, bIdx + blk.Len}, true
		}
	}
	return aRange, bRange, false
}

func rangeIntersects(set map[int]bool, start, stop int) bool {
	for i := start; i < stop; i++ {
		if set[i] {
			return true
		}
	}
	return false
}

// projectDomainWindowToCDS maps the current domain-space LCS window to
// CDS-space indices via each side's domain→CDS map, widening a
// start==stop degenerate window by one CDS.
func projectDomainWindowToCDS(p *Pair) {
	r := p.Region

	r.LCSAStart = p.aDomainToCDS[clampDomainIdx(r.LCSDomainAStart, len(p.aDomainToCDS))]
	r.LCSAStop = p.aDomainToCDS[clampDomainIdx(r.LCSDomainAStop-1, len(p.aDomainToCDS))] + 1

	bMap := p.bDomainToCDS
	if r.Reverse {
		bMap = p.bDomainToCDSRev
	}
	r.LCSBStart = bMap[clampDomainIdx(r.LCSDomainBStart, len(bMap))]
	r.LCSBStop = bMap[clampDomainIdx(r.LCSDomainBStop-1, len(bMap))] + 1
	if r.LCSBStop == r.LCSBStart {
		r.LCSBStop++
	}

	r.AStart, r.AStop = r.LCSAStart, r.LCSAStop
	r.BStart, r.BStop = r.LCSBStart, r.LCSBStop
}

func clampDomainIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
