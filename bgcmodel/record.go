// Package bgcmodel is the in-memory representation of biosynthetic gene
// cluster (BGC) records, the coding domains (CDS) they contain, and the
// protein-domain hits (HSPs) found on those CDS.
//
// Records are produced by an upstream ingestion step (GenBank parsing and
// HMM domain annotation) that is out of scope for this module; everything
// here is immutable once constructed.
package bgcmodel

import "fmt"

// SourceType distinguishes the query BGCs being analyzed from the
// reference BGCs they are compared against.
type SourceType uint8

const (
	// Query is a record submitted for comparison by the user.
	Query SourceType = iota
	// Reference is a record from a pre-existing comparison database.
	Reference
)

func (s SourceType) String() string {
	switch s {
	case Query:
		return "QUERY"
	case Reference:
		return "REFERENCE"
	default:
		return "UNKNOWN"
	}
}

// GBK identifies the single input file a Record was parsed from. Several
// Records (a Region and the ProtoClusters/ProtoCores nested within it) may
// share the same GBK.
type GBK struct {
	ID         int
	Path       string
	SourceType SourceType
}

// Kind tags which of the three BGC record variants a Record is.
type Kind uint8

const (
	// KindRegion is a full cluster record.
	KindRegion Kind = iota
	// KindProtoCluster is a subregion with a product category and a set
	// of protocore CDS indices.
	KindProtoCluster
	// KindProtoCore is the biosynthetic heart of a ProtoCluster.
	KindProtoCore
)

func (k Kind) String() string {
	switch k {
	case KindRegion:
		return "Region"
	case KindProtoCluster:
		return "ProtoCluster"
	case KindProtoCore:
		return "ProtoCore"
	default:
		return "Unknown"
	}
}

// Record is a single BGC record: a Region, ProtoCluster, or ProtoCore.
// Record variants are modeled as a tagged sum rather than as a type
// hierarchy, so that pair generation and LCS seeding can switch on Kind
// without type assertions.
type Record struct {
	// ID is the record's persistent integer id. It must be set before the
	// record can be added to a Bin (see binning.Bin.AddRecords).
	ID int

	Parent  *GBK
	Product string
	CDS     []*CDS

	Kind Kind

	// Category is populated for KindProtoCluster and KindProtoCore only.
	Category string

	// ProtoCoreCDSIdx holds the indices into CDS that mark core
	// biosynthetic genes. Populated for KindProtoCluster only.
	ProtoCoreCDSIdx map[int]bool

	// ProtoClusterCategories holds the unique product categories of the
	// ProtoClusters nested within this record, in discovery order.
	// Populated for KindRegion only.
	ProtoClusterCategories []string
}

func (r *Record) String() string {
	path := "<no gbk>"
	if r.Parent != nil {
		path = r.Parent.Path
	}
	return fmt.Sprintf("%s(id=%d, product=%q, gbk=%s)", r.Kind, r.ID, r.Product, path)
}

// HasPersistentID reports whether r has been assigned a persistent id.
// Bins reject records without one.
func (r *Record) HasPersistentID() bool { return r.ID != 0 }

// IsProtoCluster reports whether r is a ProtoCluster or ProtoCore, the two
// variants for which the protocore predicate (rather than the biosynthetic
// CDS predicate) governs LCS tie-breaking and window validity checks.
func (r *Record) IsProtoCluster() bool {
	return r.Kind == KindProtoCluster || r.Kind == KindProtoCore
}

// CDSWithDomains returns the subsequence of r.CDS that carries at least one
// HSP, in original order. CDS-space coordinates address this slice, not
// the full r.CDS list.
func (r *Record) CDSWithDomains() []*CDS {
	out := make([]*CDS, 0, len(r.CDS))
	for _, c := range r.CDS {
		if len(c.HSPs) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// IsCDSBiosynthetic reports whether the CDS at the given CDS-with-domains
// index has gene_kind "biosynthetic".
func (r *Record) IsCDSBiosynthetic(cdsWithDomainsIdx int) bool {
	cds := r.CDSWithDomains()
	if cdsWithDomainsIdx < 0 || cdsWithDomainsIdx >= len(cds) {
		return false
	}
	return cds[cdsWithDomainsIdx].GeneKind == GeneKindBiosynthetic
}

// CDSWithDomainsIndexMap returns, for every entry in CDSWithDomains(), its
// index in the full r.CDS list. Used to translate a CDS-with-domains
// window back to the full gene range when inflating it.
func (r *Record) CDSWithDomainsIndexMap() []int {
	out := make([]int, 0, len(r.CDS))
	for i, c := range r.CDS {
		if len(c.HSPs) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// CDSHasDomains returns, for every CDS in the full r.CDS list, whether it
// carries at least one HSP.
func (r *Record) CDSHasDomains() []bool {
	out := make([]bool, len(r.CDS))
	for i, c := range r.CDS {
		out[i] = len(c.HSPs) > 0
	}
	return out
}

// IsCDSProtoCore reports whether the CDS at the given index into the full
// r.CDS list (not the with-domains subsequence) is marked as a protocore
// CDS. Only meaningful for ProtoCluster records.
func (r *Record) IsCDSProtoCore(fullCDSIdx int) bool {
	if r.ProtoCoreCDSIdx == nil {
		return false
	}
	return r.ProtoCoreCDSIdx[fullCDSIdx]
}
