package bgcmodel

// GeneKindBiosynthetic is the gene_kind label that marks a CDS as part of
// the core biosynthetic machinery of a cluster.
const GeneKindBiosynthetic = "biosynthetic"

// Strand is the CDS coding strand.
type Strand int8

const (
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// CDS is a single coding sequence: its nucleotide coordinates, strand, a
// gene_kind classification, and the ordered protein-domain hits found on
// it.
type CDS struct {
	Start, Stop int
	Strand      Strand
	GeneKind    string
	HSPs        []*HSP
}

// HasDomains reports whether the CDS carries at least one HSP.
func (c *CDS) HasDomains() bool { return len(c.HSPs) > 0 }
