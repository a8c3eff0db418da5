package binning

import (
	"strings"

	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/weights"
)

// ClassifyByClass builds one bin per record.product. When hybridsOff is
// set, a record whose product is a dotted hybrid ("a.b") is added to bins
// "a" and "b" individually rather than to a combined "a.b" bin.
// useLegacyWeights selects between the "mix" profile and the per-record
// legacy weight category (weightCategoryForHybrid) for each resulting
// bin; the first record assigned to a bin determines that bin's weight
// category.
func ClassifyByClass(records []*bgcmodel.Record, hybridsOff, useLegacyWeights bool, mode weights.AlignmentMode, ext weights.ExtendParams) ([]*Bin, error) {
	order := []string{}
	grouped := map[string][]*bgcmodel.Record{}
	categoryOf := map[string]string{}

	assign := func(label string, r *bgcmodel.Record) {
		if _, ok := grouped[label]; !ok {
			order = append(order, label)
			if useLegacyWeights {
				categoryOf[label] = weightCategoryForHybrid(r)
			} else {
				categoryOf[label] = "mix"
			}
		}
		grouped[label] = append(grouped[label], r)
	}

	for _, r := range records {
		if hybridsOff {
			parts := strings.Split(r.Product, ".")
			if len(parts) > 1 {
				for _, p := range parts {
					assign(p, r)
				}
				continue
			}
		}
		assign(r.Product, r)
	}

	bins := make([]*Bin, 0, len(order))
	for _, label := range order {
		profile := weights.Legacy(categoryOf[label])
		bin := newBin(label, profile, mode, ext)
		if err := bin.AddRecords(grouped[label]...); err != nil {
			return nil, err
		}
		bins = append(bins, bin)
	}
	return bins, nil
}

// ClassifyByCategory builds one bin per recordCategory(r) (category mode of
// as_class_bin_generator). Weight profile selection follows the same rule
// as ClassifyByClass.
func ClassifyByCategory(records []*bgcmodel.Record, useLegacyWeights bool, mode weights.AlignmentMode, ext weights.ExtendParams) ([]*Bin, error) {
	order := []string{}
	grouped := map[string][]*bgcmodel.Record{}
	categoryOf := map[string]string{}

	for _, r := range records {
		label := recordCategory(r)
		if _, ok := grouped[label]; !ok {
			order = append(order, label)
			if useLegacyWeights {
				categoryOf[label] = weightCategoryForHybrid(r)
			} else {
				categoryOf[label] = "mix"
			}
		}
		grouped[label] = append(grouped[label], r)
	}

	bins := make([]*Bin, 0, len(order))
	for _, label := range order {
		profile := weights.Legacy(categoryOf[label])
		bin := newBin(label, profile, mode, ext)
		if err := bin.AddRecords(grouped[label]...); err != nil {
			return nil, err
		}
		bins = append(bins, bin)
	}
	return bins, nil
}

// Legacy builds one bin per legacy product class, covering all eight
// non-mix classes even when empty, so downstream tooling can rely on a
// stable set of bin labels.
func Legacy(records []*bgcmodel.Record, mode weights.AlignmentMode, ext weights.ExtendParams) ([]*Bin, error) {
	grouped := map[string][]*bgcmodel.Record{}
	for _, name := range weights.Names() {
		grouped[name] = nil
	}

	for _, r := range records {
		if r.Product == "" {
			continue
		}
		class := legacyGetClass(legacyNormalizeProduct(r.Product))
		grouped[class] = append(grouped[class], r)
	}

	bins := make([]*Bin, 0, len(weights.Names()))
	for _, name := range weights.Names() {
		bin := newBin(name, weights.Legacy(name), mode, ext)
		if err := bin.AddRecords(grouped[name]...); err != nil {
			return nil, err
		}
		bins = append(bins, bin)
	}
	return bins, nil
}
