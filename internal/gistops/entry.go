// Package gistops implements the seven GiST index-method callbacks over
// fprint.Fingerprint/fprint.Union values: Compress, Decompress, Union,
// Same, Penalty, PickSplit, and Consistent. Every function here
// operates on already-validated, in-memory values — detoasting and
// page-level bookkeeping are the host's job, referenced only through
// the Entry type below.
package gistops

import (
	"github.com/soundidx/gistfp/fprint"
	"github.com/soundidx/gistfp/internal/utils"
)

// Entry is the GISTENTRY analog: one index entry, either a leaf
// fingerprint or an internal-node union key.
//
// FreshInsert marks a value straight from the table, not yet through
// Compress — the host sets this only for the very first compression
// of a newly inserted row. IsLeaf marks whether the entry is stored
// on a leaf index page (as opposed to which struct it carries: a leaf
// page entry is always a Fingerprint, an internal page entry is
// always a Union).
type Entry struct {
	FreshInsert bool
	IsLeaf      bool
	Fp          *fprint.Fingerprint
	Un          *fprint.Union
}

// SonglenRange returns the entry's songlen interval: a point for a
// leaf, the stored [min, max] for a union.
func (e Entry) SonglenRange() (lo, hi uint32) {
	if e.IsLeaf {
		return e.Fp.Songlen, e.Fp.Songlen
	}
	return e.Un.MinSonglen, e.Un.MaxSonglen
}

// descriptors returns the entry's raw r/dom/cprint content, regardless
// of whether it's a leaf or a union — every descriptor-algebra call in
// this package works from these three slices.
func (e Entry) descriptors() (r, dom []byte, cp []int32) {
	if e.IsLeaf {
		return e.Fp.R[:], e.Fp.Dom[:], e.Fp.Cprint
	}
	return e.Un.R[:], e.Un.Dom[:], e.Un.Cprint
}

func mergeEntryInto(u *fprint.Union, e Entry) {
	if e.IsLeaf {
		u.MergeFingerprint(e.Fp)
	} else {
		u.MergeUnion(e.Un)
	}
}

// seedUnion builds a fresh Union from a single entry, the way
// PickSplit materializes its two seed branches.
func seedUnion(e Entry) *fprint.Union {
	if e.IsLeaf {
		return fprint.UnionFromFingerprint(e.Fp)
	}
	return fprint.UnionFromUnion(e.Un)
}

var errZeroEntries = utils.NewError(utils.KindInternalInvariant, "called with zero entries")
