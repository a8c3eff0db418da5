package compare

import "github.com/grailbio/bgccompare/bgcmodel"

// ComparableRegion is the mutable window shared by a Pair's LCS seed,
// extension, and scoring steps: the LCS window on domain- and CDS-index
// space, the current (possibly extended) window on both spaces, and a
// reverse flag marking whether B is traversed reverse-complement. Start
// is inclusive, stop exclusive.
type ComparableRegion struct {
	// LCSDomainAStart/Stop, LCSDomainBStart/Stop are the LCS seed window
	// on domain-index space.
	LCSDomainAStart, LCSDomainAStop int
	LCSDomainBStart, LCSDomainBStop int

	// LCSAStart/Stop, LCSBStart/Stop are the same seed window projected to
	// CDS-index space (indices into CDSWithDomains).
	LCSAStart, LCSAStop int
	LCSBStart, LCSBStop int

	// DomainAStart/Stop, DomainBStart/Stop are the current (possibly
	// extended) window on domain-index space.
	DomainAStart, DomainAStop int
	DomainBStart, DomainBStop int

	// AStart/Stop, BStart/Stop are the current window projected to
	// CDS-index space.
	AStart, AStop int
	BStart, BStop int

	// Reverse is whether B is traversed reverse-complement.
	Reverse bool

	fullADomainLen, fullBDomainLen int
	fullACDSLen, fullBCDSLen       int
}

// NewComparableRegion builds a region initialized to the full range on
// both sides, given each side's CDS-with-domains length and flattened
// domain-list length.
func NewComparableRegion(aCDSLen, bCDSLen, aDomainLen, bDomainLen int) *ComparableRegion {
	cr := &ComparableRegion{
		fullACDSLen: aCDSLen, fullBCDSLen: bCDSLen,
		fullADomainLen: aDomainLen, fullBDomainLen: bDomainLen,
	}
	cr.Reset()
	return cr
}

// Reset restores the region to the full range on both sides and clears
// the reverse flag, matching the seed windows to the full range too so a
// reset region scores the full domain lists.
func (cr *ComparableRegion) Reset() {
	cr.Reverse = false
	cr.DomainAStart, cr.DomainAStop = 0, cr.fullADomainLen
	cr.DomainBStart, cr.DomainBStop = 0, cr.fullBDomainLen
	cr.AStart, cr.AStop = 0, cr.fullACDSLen
	cr.BStart, cr.BStop = 0, cr.fullBCDSLen
	cr.LCSDomainAStart, cr.LCSDomainAStop = cr.DomainAStart, cr.DomainAStop
	cr.LCSDomainBStart, cr.LCSDomainBStop = cr.DomainBStart, cr.DomainBStop
	cr.LCSAStart, cr.LCSAStop = cr.AStart, cr.AStop
	cr.LCSBStart, cr.LCSBStop = cr.BStart, cr.BStop
}

// bNaturalRange translates BStart/BStop back to B's natural (non-reversed)
// CDS-with-domains order, needed to test biosynthetic/protocore membership
// against B's own records, which are always indexed in natural order.
func (cr *ComparableRegion) bNaturalRange() (start, stop int) {
	if !cr.Reverse {
		return cr.BStart, cr.BStop
	}
	return cr.fullBCDSLen - cr.BStop, cr.fullBCDSLen - cr.BStart
}

// lcsBNaturalRange is bNaturalRange for the LCS seed window.
func (cr *ComparableRegion) lcsBNaturalRange() (start, stop int) {
	if !cr.Reverse {
		return cr.LCSBStart, cr.LCSBStop
	}
	return cr.fullBCDSLen - cr.LCSBStop, cr.fullBCDSLen - cr.LCSBStart
}

// Check reports whether the current CDS window has length >= minLen on
// both sides and, if requireSpecial, whether it intersects the protocore
// CDS index on at least one side (when either record is a ProtoCluster or
// ProtoCore) or otherwise contains a biosynthetic CDS on at least one side.
func (cr *ComparableRegion) Check(minLen int, requireSpecial bool, a, b *bgcmodel.Record) bool {
	if cr.AStop-cr.AStart < minLen || cr.BStop-cr.BStart < minLen {
		return false
	}
	if !requireSpecial {
		return true
	}
	bStart, bStop := cr.bNaturalRange()
	if a.IsProtoCluster() || b.IsProtoCluster() {
		return a.HasProtoCoreInRange(cr.AStart, cr.AStop) || b.HasProtoCoreInRange(bStart, bStop)
	}
	return a.HasBiosyntheticInRange(cr.AStart, cr.AStop) || b.HasBiosyntheticInRange(bStart, bStop)
}

// Inflate translates the window and its LCS seed from CDS-with-domains
// space to the full per-record CDS list, widening the current window to
// include any boundary CDS that carry no domains, so the emitted window
// reflects the full gene range it spans. aHasDomains and
// bHasDomains report, for an index into the full CDS list, whether that
// CDS carries at least one domain; aMap/bMap translate a CDS-with-domains
// index to its position in the full list. After Inflate,
// AStart <= LCSAStart <= LCSAStop <= AStop holds, and likewise for B.
func (cr *ComparableRegion) Inflate(aMap, bMap []int, aHasDomains, bHasDomains []bool) {
	cr.LCSAStart, cr.LCSAStop = projectToFull(cr.LCSAStart, cr.LCSAStop, aMap)
	cr.AStart, cr.AStop = inflateSide(cr.AStart, cr.AStop, aMap, aHasDomains)

	bStart, bStop := cr.bNaturalRange()
	bStart, bStop = inflateSide(bStart, bStop, bMap, bHasDomains)
	lcsBStart, lcsBStop := cr.lcsBNaturalRange()
	lcsBStart, lcsBStop = projectToFull(lcsBStart, lcsBStop, bMap)
	if !cr.Reverse {
		cr.BStart, cr.BStop = bStart, bStop
		cr.LCSBStart, cr.LCSBStop = lcsBStart, lcsBStop
	} else {
		fullLen := len(bHasDomains)
		cr.BStart, cr.BStop = fullLen-bStop, fullLen-bStart
		cr.LCSBStart, cr.LCSBStop = fullLen-lcsBStop, fullLen-lcsBStart
	}
}

// projectToFull maps a CDS-with-domains window [start, stop) to full-CDS-
// list indices without widening it.
func projectToFull(start, stop int, cdsMap []int) (int, int) {
	if len(cdsMap) == 0 || stop <= start {
		return start, stop
	}
	return cdsMap[clampIdx(start, len(cdsMap))], cdsMap[clampIdx(stop-1, len(cdsMap))] + 1
}

// inflateSide walks outward in the full CDS list from the CDS-with-domains
// window [start, stop) until it hits a domain-bearing CDS (exclusive) or
// the record boundary, returning the widened bounds in full-CDS-list
// space.
func inflateSide(start, stop int, cdsMap []int, hasDomains []bool) (int, int) {
	if len(cdsMap) == 0 {
		return start, stop
	}
	fullStart := cdsMap[clampIdx(start, len(cdsMap))]
	fullStop := cdsMap[clampIdx(stop-1, len(cdsMap))] + 1

	for fullStart > 0 && !hasDomains[fullStart-1] {
		fullStart--
	}
	for fullStop < len(hasDomains) && !hasDomains[fullStop] {
		fullStop++
	}
	return fullStart, fullStop
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
