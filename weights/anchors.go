package weights

// AnchorDomains holds the domain accessions that receive the anchor
// boost weight in DSS scoring, carried over from BiG-SCAPE 1.0.
var AnchorDomains = map[string]bool{
	"PF02801": true,
	"PF02624": true,
	"PF00109": true,
	"PF00501": true,
	"PF02797": true,
	"PF01397": true,
	"PF03936": true,
	"PF00432": true,
	"PF00195": true,
	"PF00494": true,
	"PF00668": true,
	"PF05147": true,
}

// IsAnchor reports whether accession is a legacy anchor domain.
func IsAnchor(accession string) bool {
	return AnchorDomains[accession]
}
