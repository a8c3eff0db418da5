package binning

import (
	"github.com/grailbio/bgccompare/bgcmodel"
	"github.com/grailbio/bgccompare/weights"
)

// Mix builds the single all-vs-all bin over every record, weighted by the
// "mix" profile.
func Mix(records []*bgcmodel.Record, mode weights.AlignmentMode, ext weights.ExtendParams) (*Bin, error) {
	bin := newBin("mix", weights.MixProfile, mode, ext)
	if err := bin.AddRecords(records...); err != nil {
		return nil, err
	}
	return bin, nil
}
