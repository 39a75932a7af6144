package fprint

// Thresholds bundles every tunable cutoff used by the scalar match
// operators and Consistent's internal-node branch. Exposing them as a
// struct rather than compile-time constants means recalibrating
// against a new labeled corpus doesn't require a rebuild; callers who
// want the original fitted values use DefaultThresholds.
type Thresholds struct {
	// ExactCutoff is the match score above which two leaves are
	// considered equal (EQ/NEQ strategies).
	ExactCutoff float64
	// MatchCutoff is the match score above which two leaves are
	// considered a probable match (Same strategy).
	MatchCutoff float64

	// BaseInterval is the default internal-node admission threshold.
	BaseInterval float64
	// LongSonglenCutoff and LongInterval raise the threshold for queries
	// over songs longer than LongSonglenCutoff seconds.
	LongSonglenCutoff uint32
	LongInterval      float64
	// MidSonglenLow/High and MidInterval lower the threshold for
	// queries whose songlen lies strictly between the two bounds.
	MidSonglenLow   uint32
	MidSonglenHigh  uint32
	MidInterval     float64
	VeryLongCutoff  uint32
	VeryLongInterval float64

	// External-interval admission: when the query's songlen falls
	// outside the union's [min, max] interval, these bounds decide
	// whether it's still close enough to test.
	ExternalWideCutoff    uint32
	ExternalNarrowCutoff  uint32
	ExternalVeryWideCutoff uint32
	NarrowBandCutoff      uint32
	NarrowBandSlack       float64
	WideBandSlack         float64
	MidBandLowCutoff      uint32
	MidBandLowSlack       float64
	MidBandHighSlack      float64

	// WishBias scales PickSplit's convex tie-breaking term.
	WishBias float64
	// AllEqualSplitCutoff is the pairwise match score above which an
	// apparently all-equal songlen cluster is treated as separable.
	AllEqualSplitCutoff float64
}

// DefaultThresholds returns the coefficients fitted in the original
// implementation.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExactCutoff: 0.98,
		MatchCutoff: 0.6,

		BaseInterval:           0.08,
		LongSonglenCutoff:      150,
		LongInterval:           0.1,
		MidSonglenLow:          40,
		MidSonglenHigh:         46,
		MidInterval:            0.03,
		VeryLongCutoff:         150,
		VeryLongInterval:       0.15,

		ExternalWideCutoff:     155,
		ExternalNarrowCutoff:   61,
		ExternalVeryWideCutoff: 110,
		NarrowBandCutoff:       30,
		NarrowBandSlack:        0.8,
		WideBandSlack:          0.6,
		MidBandLowCutoff:       110,
		MidBandLowSlack:        0.07,
		MidBandHighSlack:       0.05,

		WishBias:            0.1,
		AllEqualSplitCutoff: 0.4,
	}
}
