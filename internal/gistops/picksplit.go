package gistops

import (
	"sort"

	"github.com/soundidx/gistfp/fprint"
	"github.com/soundidx/gistfp/internal/descriptor"
	"github.com/soundidx/gistfp/internal/utils"
)

// SplitResult is the outcome of PickSplit: the two index-into-entries
// groups and the union key each group collapses to.
type SplitResult struct {
	Left, Right           []int
	LeftUnion, RightUnion *fprint.Union
}

// pair is one scored candidate, either an all-equal pairwise score or
// a seed-assignment candidate — both get sorted by the same two keys.
type pair struct {
	ix1, ix2    int
	songlenDiff uint32
	val         float64
}

func sortPairs(p []pair) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].songlenDiff != p[j].songlenDiff {
			return p[i].songlenDiff < p[j].songlenDiff
		}
		return p[i].val < p[j].val
	})
}

// wishF is the convex bias PickSplit's regular-path tie-break applies
// in favor of the smaller branch: it grows steeply as the branch size
// imbalance (a-b) grows, scaled by bias.
func wishF(a, b int, bias float64) float64 {
	d := float64(a - b)
	return -(d * d * d) * bias
}

func pairScore(leafSplit bool, a, b Entry) float64 {
	rA, domA, cpA := a.descriptors()
	rB, domB, cpB := b.descriptors()
	if leafSplit {
		loA, _ := a.SonglenRange()
		loB, _ := b.SonglenRange()
		return descriptor.LeafVsLeaf(loA, loB, rA, domA, cpA, rB, domB, cpB)
	}
	return descriptor.LeafVsUnion(rA, domA, cpA, rB, domB, cpB)
}

func tryMatchEntry(u1, u2 *fprint.Union, e Entry) float64 {
	r, dom, cp := e.descriptors()
	return descriptor.TryMatch(u1.R[:], u1.Dom[:], u1.Cprint, u2.R[:], u2.Dom[:], u2.Cprint, r, dom, cp)
}

// PickSplit divides entries between two new pages, following the
// original's Guttman-style heuristic: seed from the two entries with
// the widest songlen spread, then assign every remaining entry to
// whichever seed it's nearer in songlen, breaking ties (and near-ties)
// by how much each assignment would actually help the resulting
// union's descriptor match quality.
//
// When every entry shares the same songlen, the songlen heuristic has
// nothing to work with, so PickSplit instead falls back to scoring
// every pair directly: if no pair scores above AllEqualSplitCutoff it
// splits the entries in half by position; otherwise it reseeds from
// the highest-scoring pair and proceeds normally.
func PickSplit(entries []Entry, t fprint.Thresholds) (*SplitResult, error) {
	n := len(entries)
	if n == 0 {
		return nil, errZeroEntries
	}
	if n == 1 {
		return nil, utils.NewError(utils.KindInternalInvariant, "picksplit called with a single entry")
	}

	leafSplit := entries[0].IsLeaf
	minSonglen, maxSonglen := entries[0].SonglenRange()
	seedLeft, seedRight := 0, 0
	allEqual := true
	for i := 1; i < n; i++ {
		lo, hi := entries[i].SonglenRange()
		if minSonglen > lo {
			seedLeft = i
			minSonglen = lo
			allEqual = false
		} else if maxSonglen < hi {
			seedRight = i
			maxSonglen = hi
			allEqual = false
		}
	}

	if n < 3 {
		i1, i2 := seedLeft, seedRight
		if allEqual {
			i1, i2 = 0, 1
		}
		leftUnion := seedUnion(entries[i1])
		rightUnion := seedUnion(entries[i2])
		// The two-entry case only collapses the seed's songlen interval
		// to a point when splitting actual leaves; a pair of internal-node
		// unions keeps whatever interval it already carries.
		if leafSplit {
			leftUnion.MinSonglen, leftUnion.MaxSonglen = minSonglen, minSonglen
			rightUnion.MinSonglen, rightUnion.MaxSonglen = maxSonglen, maxSonglen
		}
		return &SplitResult{Left: []int{i1}, Right: []int{i2}, LeftUnion: leftUnion, RightUnion: rightUnion}, nil
	}

	if allEqual {
		allPairs := make([]pair, 0, n*(n-1)/2)
		for k := 0; k < n; k++ {
			for l := k + 1; l < n; l++ {
				allPairs = append(allPairs, pair{ix1: k, ix2: l, val: pairScore(leafSplit, entries[k], entries[l])})
			}
		}
		sortPairs(allPairs)
		if allPairs[len(allPairs)-1].val > t.AllEqualSplitCutoff {
			allEqual = false
			best := allPairs[len(allPairs)-1]
			seedLeft, seedRight = best.ix1, best.ix2
		} else {
			return allEqualSplit(entries, minSonglen, maxSonglen), nil
		}
	}

	leftUnion := seedUnion(entries[seedLeft])
	rightUnion := seedUnion(entries[seedRight])
	leftUnion.MinSonglen, leftUnion.MaxSonglen = minSonglen, minSonglen
	rightUnion.MinSonglen, rightUnion.MaxSonglen = maxSonglen, maxSonglen
	left := []int{seedLeft}
	right := []int{seedRight}

	ranked := make([]pair, 0, n-2)
	for k := 0; k < n; k++ {
		if k == seedLeft || k == seedRight {
			continue
		}
		lo, hi := entries[k].SonglenRange()
		songlenDiff := min(hi-minSonglen, maxSonglen-lo)
		tmatchLeft := tryMatchEntry(rightUnion, leftUnion, entries[k])
		tmatchRight := tryMatchEntry(leftUnion, rightUnion, entries[k])
		ranked = append(ranked, pair{ix1: k, songlenDiff: songlenDiff, val: min(tmatchLeft, tmatchRight)})
	}
	sortPairs(ranked)

	for _, m := range ranked {
		k := m.ix1
		lo, hi := entries[k].SonglenRange()
		distLeft := hi - minSonglen
		distRight := maxSonglen - lo

		switch {
		case distLeft < distRight:
			left = append(left, k)
			mergeEntryInto(leftUnion, entries[k])
		case distLeft > distRight:
			right = append(right, k)
			mergeEntryInto(rightUnion, entries[k])
		default:
			tmatchLeft := tryMatchEntry(rightUnion, leftUnion, entries[k])
			tmatchRight := tryMatchEntry(leftUnion, rightUnion, entries[k])
			wish := wishF(len(left), len(right), t.WishBias)
			switch {
			case tmatchLeft < tmatchRight+wish:
				left = append(left, k)
				mergeEntryInto(leftUnion, entries[k])
			case tmatchLeft > tmatchRight:
				right = append(right, k)
				mergeEntryInto(rightUnion, entries[k])
			case len(left) < len(right):
				left = append(left, k)
				mergeEntryInto(leftUnion, entries[k])
			default:
				right = append(right, k)
				mergeEntryInto(rightUnion, entries[k])
			}
		}
	}

	return &SplitResult{Left: left, Right: right, LeftUnion: leftUnion, RightUnion: rightUnion}, nil
}

// allEqualSplit handles an n>=3 equal-songlen cluster whose pairwise
// scores are all at or below AllEqualSplitCutoff: the split is a plain
// half-and-half, so entries sort by nothing but position, first and
// last anchor the two new unions, and the rest fill up to half a page
// each.
func allEqualSplit(entries []Entry, minSonglen, maxSonglen uint32) *SplitResult {
	n := len(entries)
	leftUnion := seedUnion(entries[0])
	rightUnion := seedUnion(entries[n-1])
	leftUnion.MinSonglen, leftUnion.MaxSonglen = minSonglen, minSonglen
	rightUnion.MinSonglen, rightUnion.MaxSonglen = maxSonglen, maxSonglen

	left := []int{0}
	right := []int{n - 1}
	maxClustSz := (n + 1) / 2
	for k := 1; k < n-1; k++ {
		if k < maxClustSz {
			left = append(left, k)
			mergeEntryInto(leftUnion, entries[k])
		} else {
			right = append(right, k)
			mergeEntryInto(rightUnion, entries[k])
		}
	}
	return &SplitResult{Left: left, Right: right, LeftUnion: leftUnion, RightUnion: rightUnion}
}
