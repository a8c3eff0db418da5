package binning

import "strings"

var pks1Products = set("t1pks", "T1PKS")

var pksOtherProducts = set(
	"transatpks", "t2pks", "t3pks", "otherks", "hglks",
	"transAT-PKS", "transAT-PKS-like", "T2PKS", "T3PKS", "PKS-like", "hglE-KS",
)

var nrpsProducts = set("nrps", "NRPS", "NRPS-like", "thioamide-NRP", "NAPAA")

var rippsProducts = set(
	"lantipeptide", "thiopeptide", "bacteriocin", "linaridin", "cyanobactin",
	"glycocin", "LAP", "lassopeptide", "sactipeptide", "bottromycin",
	"head_to_tail", "microcin", "microviridin", "proteusin", "lanthipeptide",
	"lipolanthine", "RaS-RiPP", "fungal-RiPP", "TfuA-related", "guanidinotides",
	"RiPP-like", "lanthipeptide-class-i", "lanthipeptide-class-ii",
	"lanthipeptide-class-iii", "lanthipeptide-class-iv", "lanthipeptide-class-v",
	"ranthipeptide", "redox-cofactor", "thioamitides", "epipeptide",
	"cyclic-lactone-autoinducer", "spliceotide", "RRE-containing",
)

var saccharideProducts = set("amglyccycl", "oligosaccharide", "cf_saccharide", "saccharide")

var otherProducts = set(
	"acyl_amino_acids", "arylpolyene", "aminocoumarin", "ectoine", "butyrolactone",
	"nucleoside", "melanin", "phosphoglycolipid", "phenazine", "phosphonate",
	"other", "cf_putative", "resorcinol", "indole", "ladderane", "PUFA", "furan",
	"hserlactone", "fused", "cf_fatty_acid", "siderophore", "blactam",
	"fatty_acid", "PpyS-KS", "CDPS", "betalactone", "PBDE", "tropodithietic-acid",
	"NAGGN", "halogenated", "pyrrolidine",
)

func set(items ...string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		out[s] = true
	}
	return out
}

func subtract(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}

func union(sets ...map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

// legacyNormalizeProduct replaces "-" with "." in product before
// classification; older antiSMASH versions write product hybrids with
// hyphens instead of dots.
func legacyNormalizeProduct(product string) string {
	return strings.ReplaceAll(product, "-", ".")
}

// legacyGetClass sorts a product string into one of the legacy weight
// classes. Dotted hybrid products are classified by set subtraction
// against the product families.
func legacyGetClass(product string) string {
	switch {
	case pks1Products[product]:
		return "PKSI"
	case pksOtherProducts[product]:
		return "PKSother"
	case nrpsProducts[product]:
		return "NRPS"
	case rippsProducts[product]:
		return "RiPP"
	case saccharideProducts[product]:
		return "saccharide"
	case product == "terpene":
		return "terpene"
	}

	parts := strings.Split(product, ".")
	if len(parts) > 1 {
		subtypes := map[string]bool{}
		for _, s := range parts {
			subtypes[strings.TrimSpace(s)] = true
		}
		pksAndNRPS := union(pks1Products, pksOtherProducts, nrpsProducts)
		switch {
		case len(subtract(subtypes, pksAndNRPS)) == 0:
			switch {
			case len(subtract(subtypes, nrpsProducts)) == 0:
				return "NRPS"
			case len(subtract(subtypes, union(pks1Products, pksOtherProducts))) == 0:
				return "PKSother"
			default:
				return "PKS-NRP_Hybrids"
			}
		case len(subtract(subtypes, rippsProducts)) == 0:
			return "RiPP"
		case len(subtract(subtypes, saccharideProducts)) == 0:
			return "saccharide"
		default:
			return "other"
		}
	}

	if otherProducts[product] || product == "" {
		return "other"
	}
	return "other"
}
