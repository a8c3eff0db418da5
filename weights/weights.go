// Package weights holds the per-class scoring weight profiles, the legacy
// anchor-domain set, and edge-parameter-id resolution shared by the bin
// builder and the distance scorers.
package weights

import "github.com/grailbio/base/log"

// Profile is a named set of JC/AI/DSS weights plus the anchor-domain score
// boost applied during DSS.
type Profile struct {
	Name        string
	JC, AI, DSS float64
	AnchorBoost float64
}

// SumToOne reports whether the JC/AI/DSS components sum to 1.0 within
// floating point tolerance. Every legacy profile satisfies this.
func (p Profile) SumToOne() bool {
	const eps = 1e-9
	sum := p.JC + p.AI + p.DSS
	return sum > 1.0-eps && sum < 1.0+eps
}

// legacyProfiles is the fixed per-class weight table carried over from
// BiG-SCAPE 1.0.
var legacyProfiles = map[string]Profile{
	"PKSI":            {Name: "PKSI", JC: 0.22, AI: 0.02, DSS: 0.76, AnchorBoost: 1.0},
	"PKSother":        {Name: "PKSother", JC: 0.00, AI: 0.68, DSS: 0.32, AnchorBoost: 4.0},
	"NRPS":            {Name: "NRPS", JC: 0.00, AI: 0.00, DSS: 1.00, AnchorBoost: 4.0},
	"RiPP":            {Name: "RiPP", JC: 0.28, AI: 0.01, DSS: 0.71, AnchorBoost: 1.0},
	"saccharide":      {Name: "saccharide", JC: 0.00, AI: 1.00, DSS: 0.00, AnchorBoost: 1.0},
	"terpene":         {Name: "terpene", JC: 0.20, AI: 0.05, DSS: 0.75, AnchorBoost: 2.0},
	"PKS-NRP_Hybrids": {Name: "PKS-NRP_Hybrids", JC: 0.00, AI: 0.22, DSS: 0.78, AnchorBoost: 1.0},
	"other":           {Name: "other", JC: 0.01, AI: 0.02, DSS: 0.97, AnchorBoost: 4.0},
	"mix":             {Name: "mix", JC: 0.20, AI: 0.05, DSS: 0.75, AnchorBoost: 2.0},
}

// MixProfile is the fallback profile used for unknown labels and the "mix"
// bin.
var MixProfile = legacyProfiles["mix"]

// Legacy returns the weight profile for a legacy class label. Unknown
// labels fall back to MixProfile.
func Legacy(class string) Profile {
	if p, ok := legacyProfiles[class]; ok {
		return p
	}
	log.Error.Printf("weights: unknown class %q, using mix weights", class)
	return MixProfile
}

// Names returns the legacy class names in a stable order, used by the
// legacy bin builder to build one bin per class.
func Names() []string {
	return []string{
		"PKSI", "PKSother", "NRPS", "RiPP", "saccharide",
		"terpene", "PKS-NRP_Hybrids", "other",
	}
}
