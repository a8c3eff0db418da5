package binning

import (
	"strings"

	"github.com/grailbio/bgccompare/bgcmodel"
)

// categorylessLabel is the fallback bin label for records with no
// assigned category.
const categorylessLabel = "Categoryless"

// recordCategory returns the bin label used by classify-by-category:
// ProtoCluster and ProtoCore records use their own category; Region
// records concatenate the unique categories of their nested
// protoclusters.
func recordCategory(r *bgcmodel.Record) string {
	if r.IsProtoCluster() {
		if r.Category == "" {
			return categorylessLabel
		}
		return r.Category
	}

	// KindRegion: concatenate unique nested protocluster categories.
	if len(r.ProtoClusterCategories) == 0 {
		return categorylessLabel
	}
	if len(r.ProtoClusterCategories) == 1 {
		return r.ProtoClusterCategories[0]
	}
	return strings.Join(r.ProtoClusterCategories, ".")
}

// weightCategoryForHybrid resolves the legacy weight-table class for a
// record's category set. For records with more than one category this
// always returns "PKSother", reproducing the BiG-SCAPE 1.0 hybrid
// classification as it actually behaved on real data.
func weightCategoryForHybrid(r *bgcmodel.Record) string {
	var categories []string
	if r.IsProtoCluster() && r.Category != "" {
		// T1PKS is the one antiSMASH product whose category does not
		// correspond to a legacy weight class; the product is used instead.
		if r.Product == "T1PKS" {
			categories = append(categories, r.Product)
		} else {
			categories = append(categories, r.Category)
		}
	}
	if r.Kind == bgcmodel.KindRegion {
		categories = append(categories, r.ProtoClusterCategories...)
	}

	switch len(categories) {
	case 0:
		return "other"
	case 1:
		return categories[0]
	default:
		return "PKSother"
	}
}
