// Package compare implements the comparable-region window, the LCS
// seeder, the affine-scored extender, the distance scorers, and the
// per-pair worker pipeline that ties them together.
package compare

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/bgccompare/bgcmodel"
)

// Pair is an unordered pair of records bound to the ComparableRegion the
// worker pipeline scores them over. Two pairs are equal iff their record
// sets match; hash is order-independent.
type Pair struct {
	A, B *bgcmodel.Record

	Region *ComparableRegion

	aDomains, bDomains []string
	aDomainToCDS       []int
	bDomainToCDS       []int
	bDomainToCDSRev    []int
}

// NewPair builds a Pair, validating that both records carry a parent GBK
// and initializing its ComparableRegion to the full range on both sides.
func NewPair(a, b *bgcmodel.Record) (*Pair, error) {
	if a.Parent == nil || b.Parent == nil {
		return nil, errors.E(errors.Invalid, "compare: pair record has no parent GBK")
	}
	p := &Pair{
		A: a, B: b,
		aDomains: a.Domains(),
		bDomains: b.Domains(),
	}
	p.aDomainToCDS = a.DomainToCDSIndex()
	p.bDomainToCDS = b.DomainToCDSIndex()
	p.bDomainToCDSRev = reverseCDSIndex(p.bDomainToCDS, len(b.CDSWithDomains()))
	p.Region = NewComparableRegion(len(a.CDSWithDomains()), len(b.CDSWithDomains()), len(p.aDomains), len(p.bDomains))
	return p, nil
}

// reverseCDSIndex builds the domain→cds index map for B traversed in
// reverse: reversing the domain axis and the CDS axis together preserves
// monotonicity.
func reverseCDSIndex(fwd []int, bCDSLen int) []int {
	n := len(fwd)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = bCDSLen - 1 - fwd[n-1-i]
	}
	return out
}

// orientedBDomains returns B's domain accession sequence in the orientation
// the pair's ComparableRegion currently uses: reversed when Region.Reverse.
func (p *Pair) orientedBDomains() []string {
	if !p.Region.Reverse {
		return p.bDomains
	}
	return reverseStrings(p.bDomains)
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// orientedBHSPs returns B's domain HSPs (aligned 1:1 with orientedBDomains)
// in the pair's current traversal orientation.
func (p *Pair) orientedBHSPs() []*bgcmodel.HSP {
	hsps := p.B.DomainHSPs()
	if !p.Region.Reverse {
		return hsps
	}
	out := make([]*bgcmodel.HSP, len(hsps))
	for i, h := range hsps {
		out[len(hsps)-1-i] = h
	}
	return out
}

// Hash returns an order-independent hash of the pair's record ids.
func (p *Pair) Hash() int {
	return p.A.ID + p.B.ID
}

// Equal reports whether p and o contain the same two records, regardless
// of order.
func (p *Pair) Equal(o *Pair) bool {
	if o == nil {
		return false
	}
	return (p.A.ID == o.A.ID && p.B.ID == o.B.ID) || (p.A.ID == o.B.ID && p.B.ID == o.A.ID)
}
