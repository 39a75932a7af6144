package gistops

import (
	"github.com/soundidx/gistfp/fprint"
	"github.com/soundidx/gistfp/internal/descriptor"
)

// Consistent decides whether entry could possibly contain a match for
// query under strategy, and whether the host must recheck the exact
// condition against the heap tuple (always false for a leaf entry,
// since the leaf branch is already exact; true for an admitted
// internal-node entry, since a union key only ever approximates what
// its subtree contains, and false for a rejected one).
//
// The leaf branch just re-scores and applies the requested strategy.
// The internal-node branch is a threshold ladder tuned against a
// labeled corpus: when the query's songlen falls inside the union's
// interval, admission uses a base threshold tightened or loosened at
// a few specific songlen bands; outside the interval, admission only
// happens at all when the query is short enough and close enough to
// the interval's edge to be worth the descriptor comparison.
func Consistent(e Entry, query *fprint.Fingerprint, strategy int, t fprint.Thresholds) (retval, recheck bool) {
	if query == nil {
		return false, false
	}

	if e.IsLeaf {
		val := descriptor.LeafVsLeaf(query.Songlen, e.Fp.Songlen, query.R[:], query.Dom[:], query.Cprint,
			e.Fp.R[:], e.Fp.Dom[:], e.Fp.Cprint)
		switch strategy {
		case fprint.StrategyEQ:
			retval = val > t.ExactCutoff
		case fprint.StrategyNEQ:
			retval = val <= t.ExactCutoff
		default: // StrategySame and anything else falls back to the general match test
			retval = val > t.MatchCutoff
		}
		return retval, false
	}

	fpu := e.Un
	recheck = true
	threshold := t.BaseInterval

	switch {
	case fpu.MinSonglen <= query.Songlen && query.Songlen <= fpu.MaxSonglen:
		if query.Songlen > t.LongSonglenCutoff {
			threshold = t.LongInterval
		} else if query.Songlen > t.MidSonglenLow && query.Songlen < t.MidSonglenHigh {
			threshold = t.MidInterval
		}
		val := descriptor.LeafVsUnion(query.R[:], query.Dom[:], query.Cprint, fpu.R[:], fpu.Dom[:], fpu.Cprint)
		retval = val > threshold

	case query.Songlen < t.ExternalWideCutoff:
		var songlenDiff float64
		if query.Songlen < fpu.MinSonglen {
			songlenDiff = float64(fpu.MinSonglen-query.Songlen) / float64(fpu.MinSonglen)
		} else {
			songlenDiff = float64(query.Songlen-fpu.MaxSonglen) / float64(query.Songlen)
		}

		admit := false
		switch {
		case query.Songlen < t.ExternalNarrowCutoff:
			if (query.Songlen < t.NarrowBandCutoff && songlenDiff < t.NarrowBandSlack) ||
				(query.Songlen < t.ExternalNarrowCutoff && songlenDiff < t.WideBandSlack) {
				admit = true
			}
		case (query.Songlen < t.MidBandLowCutoff && songlenDiff < t.MidBandLowSlack) ||
			(query.Songlen < t.ExternalWideCutoff && songlenDiff < t.MidBandHighSlack):
			admit = true
			if query.Songlen > t.VeryLongCutoff {
				threshold = t.VeryLongInterval
			}
		}

		if admit {
			val := descriptor.LeafVsUnion(query.R[:], query.Dom[:], query.Cprint, fpu.R[:], fpu.Dom[:], fpu.Cprint)
			retval = val > threshold
		}
	}

	if !retval {
		recheck = false
	}
	return retval, recheck
}
