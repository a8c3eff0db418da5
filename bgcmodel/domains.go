package bgcmodel

// Domains returns the flattened list of domain accessions across every CDS
// in r, in CDS then HSP order. This is the "domain-space" sequence that the
// LCS seeder and distance scorers operate on.
//
// Invariant: len(r.Domains()) == sum of len(cds.HSPs) over r.CDS.
func (r *Record) Domains() []string {
	out := make([]string, 0, r.domainCount())
	for _, c := range r.CDS {
		for _, h := range c.HSPs {
			out = append(out, h.Accession)
		}
	}
	return out
}

// DomainHSPs returns the flattened list of HSPs in the same order as
// Domains, so that alignment-bearing scorers can walk both in lock-step.
func (r *Record) DomainHSPs() []*HSP {
	out := make([]*HSP, 0, r.domainCount())
	for _, c := range r.CDS {
		out = append(out, c.HSPs...)
	}
	return out
}

func (r *Record) domainCount() int {
	n := 0
	for _, c := range r.CDS {
		n += len(c.HSPs)
	}
	return n
}

// DomainToCDSIndex returns, for every entry in Domains(), the index of its
// owning CDS within CDSWithDomains(). The result is monotone
// non-decreasing and has the same length as Domains().
func (r *Record) DomainToCDSIndex() []int {
	out := make([]int, 0, r.domainCount())
	cdsWithDomainsIdx := -1
	for _, c := range r.CDS {
		if len(c.HSPs) == 0 {
			continue
		}
		cdsWithDomainsIdx++
		for range c.HSPs {
			out = append(out, cdsWithDomainsIdx)
		}
	}
	return out
}

// ProtoCoreDomainIndex returns the set of domain-space indices that belong
// to a CDS marked in ProtoCoreCDSIdx. Only meaningful for ProtoCluster
// records; returns an empty set otherwise.
func (r *Record) ProtoCoreDomainIndex() map[int]bool {
	out := map[int]bool{}
	if r.ProtoCoreCDSIdx == nil {
		return out
	}
	domainIdx := 0
	for fullIdx, c := range r.CDS {
		if !r.ProtoCoreCDSIdx[fullIdx] {
			domainIdx += len(c.HSPs)
			continue
		}
		for range c.HSPs {
			out[domainIdx] = true
			domainIdx++
		}
	}
	return out
}

// ProtoCoreCDSWithDomainsIndex returns the set of CDS-with-domains indices
// that belong to a CDS marked in ProtoCoreCDSIdx, the CDS-space analogue of
// ProtoCoreDomainIndex. Only meaningful for ProtoCluster records.
func (r *Record) ProtoCoreCDSWithDomainsIndex() map[int]bool {
	out := map[int]bool{}
	if r.ProtoCoreCDSIdx == nil {
		return out
	}
	cdsWithDomainsIdx := -1
	for fullIdx, c := range r.CDS {
		if len(c.HSPs) == 0 {
			continue
		}
		cdsWithDomainsIdx++
		if r.ProtoCoreCDSIdx[fullIdx] {
			out[cdsWithDomainsIdx] = true
		}
	}
	return out
}

// HasProtoCoreInRange reports whether any CDS-with-domains index in
// [start, stop) is a protocore CDS.
func (r *Record) HasProtoCoreInRange(start, stop int) bool {
	idx := r.ProtoCoreCDSWithDomainsIndex()
	for i := start; i < stop; i++ {
		if idx[i] {
			return true
		}
	}
	return false
}

// HasBiosyntheticInRange reports whether any CDS-with-domains index in
// [start, stop) has GeneKind == GeneKindBiosynthetic.
func (r *Record) HasBiosyntheticInRange(start, stop int) bool {
	for i := start; i < stop; i++ {
		if r.IsCDSBiosynthetic(i) {
			return true
		}
	}
	return false
}

// BiosyntheticDomainIndex returns the set of domain-space indices that
// belong to a CDS with GeneKind == GeneKindBiosynthetic.
func (r *Record) BiosyntheticDomainIndex() map[int]bool {
	out := map[int]bool{}
	domainIdx := 0
	for _, c := range r.CDS {
		if c.GeneKind != GeneKindBiosynthetic {
			domainIdx += len(c.HSPs)
			continue
		}
		for range c.HSPs {
			out[domainIdx] = true
			domainIdx++
		}
	}
	return out
}
