package gistops

import (
	"github.com/soundidx/gistfp/fprint"
	"github.com/soundidx/gistfp/internal/descriptor"
	"github.com/soundidx/gistfp/internal/utils"
)

// Compress applies the key-compression window to a freshly inserted
// leaf value, leaving everything else — already-compressed leaf keys
// re-read from the index, and every internal-node union key —
// unchanged. The original distinguishes these cases by an
// entry->leafkey flag; Entry.FreshInsert is its Go analog.
func Compress(e Entry) Entry {
	if !e.FreshInsert || !e.IsLeaf {
		return e
	}
	e.Fp = fprint.Compress(e.Fp)
	return e
}

// Decompress is the identity: the on-disk and in-memory representations
// of a fingerprint or union key are the same Go value.
func Decompress(e Entry) Entry {
	return e
}

// Union computes the bitwise-OR of every entry's descriptors plus the
// enclosing songlen interval. It doesn't matter whether a given entry
// is a leaf or an internal-node key: a union absorbs either the same
// way.
//
// A single internal-node entry is already a valid union key, so it's
// handed back unmodified rather than copied — the Go analog of the
// original's "free if copy" pointer-identity rule: the caller must not
// assume it owns a fresh value in that case. Every other path builds
// and returns a new union the caller does own.
func Union(entries []Entry) (utils.OwnedOrBorrowed[*fprint.Union], error) {
	if len(entries) == 0 {
		return utils.OwnedOrBorrowed[*fprint.Union]{}, errZeroEntries
	}
	if len(entries) == 1 && !entries[0].IsLeaf {
		return utils.Borrowed(entries[0].Un), nil
	}
	ret := seedUnion(entries[0])
	for _, e := range entries[1:] {
		mergeEntryInto(ret, e)
	}
	return utils.Owned(ret, func(*fprint.Union) {}), nil
}

// Same reports whether two union keys represent exactly the same
// descriptor content: identical songlen interval, bit rate, and
// byte-identical r/dom/cprint. GiST only ever calls Same on two keys
// from the same index level, so both arguments carry the same
// [min, max] songlen interval representation — a leaf-level Fingerprint
// compares through its own interval-collapsed Union (see
// fprint.UnionFromFingerprint). This is the corrected equality the
// original's commented-out FP_ISMATCH call intended — not the raw,
// unnegated memcmp the shipped C actually runs, which inverts the
// sense of the comparison.
func Same(a, b *fprint.Union) bool {
	if a.MinSonglen != b.MinSonglen || a.MaxSonglen != b.MaxSonglen {
		return false
	}
	if a.BitRate != b.BitRate {
		return false
	}
	if a.R != b.R || a.Dom != b.Dom {
		return false
	}
	if len(a.Cprint) != len(b.Cprint) {
		return false
	}
	for i, w := range a.Cprint {
		if b.Cprint[i] != w {
			return false
		}
	}
	return true
}

// Penalty scores the cost of inserting newFp beneath orig: a songlen-
// interval-widening term plus a descriptor-mismatch term built from
// LeafVsUnion. Either argument being nil (a page with no entries yet)
// returns the maximal penalty so the split chooses any other subtree
// first.
func Penalty(orig *fprint.Union, newFp *fprint.Fingerprint) float64 {
	if orig == nil || newFp == nil {
		return 1e10
	}
	origSize := orig.MaxSonglen - orig.MinSonglen
	newMax := max(orig.MaxSonglen, newFp.Songlen)
	newMin := min(orig.MinSonglen, newFp.Songlen)
	newSize := newMax - newMin

	var songlenDiff float64
	if newSize > 0 {
		songlenDiff = float64(newSize-origSize) / float64(newSize) * 2000.0
	}

	match := descriptor.LeafVsUnion(newFp.R[:], newFp.Dom[:], newFp.Cprint, orig.R[:], orig.Dom[:], orig.Cprint)
	var matchPenalty float64
	if match > 0 {
		matchPenalty = (1.0 - match) * 100.0
	} else {
		matchPenalty = 100.0
	}
	return matchPenalty + songlenDiff
}
