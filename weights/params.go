package weights

import (
	"fmt"
	"hash/fnv"
)

// AlignmentMode selects how the comparable region is extended after LCS
// seeding.
type AlignmentMode uint8

const (
	// Local seeds, extends, and resets to the full range on a failed
	// check. This is the default.
	Local AlignmentMode = iota
	// Global never extends past the LCS seed.
	Global
	// Glocal always extends, unconditionally.
	Glocal
)

func (m AlignmentMode) String() string {
	switch m {
	case Global:
		return "GLOBAL"
	case Glocal:
		return "GLOCAL"
	default:
		return "LOCAL"
	}
}

// ExtendParams are the affine-scoring extension parameters. They are
// threaded through explicitly (rather than hard-coded in package compare)
// so they participate in edge-parameter-id resolution below: a stored
// edge is only comparable to edges scored under the same parameters.
type ExtendParams struct {
	MinLCSLen       int
	MinExpandLen    int
	Match           int
	Mismatch        int
	Gap             int
	MaxMismatchFrac float64
}

// DefaultExtendParams are the standard extension scoring constants.
var DefaultExtendParams = ExtendParams{
	MinLCSLen:       3,
	MinExpandLen:    5,
	Match:           5,
	Mismatch:        -3,
	Gap:             -2,
	MaxMismatchFrac: 0.10,
}

// EdgeParamID is an opaque surrogate key for a unique
// (weight profile, alignment mode, extension parameters) triple. Callers
// must not rely on its numeric value beyond equality.
type EdgeParamID int64

// Resolve computes the EdgeParamID for a (profile, alignment mode, extend
// params) triple. Two calls with equal arguments always return the same
// id; this is a pure function of its inputs, not a database sequence, so
// bins built independently (e.g. in different processes) agree on ids
// without coordination.
func Resolve(profile Profile, mode AlignmentMode, ext ExtendParams) EdgeParamID {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%.6f|%.6f|%.6f|%.6f|%s|%d|%d|%d|%d|%d|%.6f",
		profile.Name, profile.JC, profile.AI, profile.DSS, profile.AnchorBoost,
		mode, ext.MinLCSLen, ext.MinExpandLen, ext.Match, ext.Mismatch, ext.Gap,
		ext.MaxMismatchFrac)
	return EdgeParamID(h.Sum64())
}
