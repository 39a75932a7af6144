package descriptor

import (
	"math"
	"math/bits"
)

// combine folds a fooid confidence and a chroma score into the
// overall match confidence via the fitted polynomial, then clamps to
// [0, 1]. The coefficients come from a regression fit against a
// labeled match/no-match corpus and are not meant to be re-derived;
// treat them as opaque constants.
func combine(fooid, chroma float64) float64 {
	comb := (0.012985 + 0.263439*fooid - 0.683234*chroma + 1.592623*chroma*chroma*chroma + 0.06348) / 1.2489
	return clamp01(comb)
}

// subsetOrLowBit reports whether y's bits are a superset of x's, or
// x and y share the same lowest set bit. Used for the asymmetric
// leaf-vs-union and union-vs-union chroma comparisons, where a leaf
// word "matches" a union word either because the union already
// covers it or because their dominant chroma bit agrees.
func subsetOrLowBit(x, y int32) bool {
	ux, uy := uint32(x), uint32(y)
	if ux == ux&uy {
		return true
	}
	return cmpLowBit(x, y)
}

// LeafVsLeaf scores two leaf fingerprints against each other. Two
// fingerprints whose song lengths differ by more than 10% of the
// shorter one are never considered a match, regardless of descriptor
// content.
func LeafVsLeaf(songlenA, songlenB uint32, rA, domA []byte, cpA []int32, rB, domB []byte, cpB []int32) float64 {
	slA, slB := float64(songlenA), float64(songlenB)
	if math.Abs(slA-slB) > 0.1*math.Min(slA, slB) {
		return 0.0
	}
	fm := FooidScore(rA, domA, rB, domB)
	cp := ChromaScore(cpA, cpB)
	return combine(fm, cp)
}

// rDiffAsym computes the asymmetric weighted r-distance between rA
// (the left-hand operand) and some right-hand combination: for each
// word index i, rRight(i) supplies the already-combined right word,
// and only bits set in rA's word but absent from it count.
// domDiffAsym is the popcount counterpart over the dom field.
func rDiffAsym(rA []byte, rRight func(i int) uint32) uint32 {
	var total uint32
	for i := 0; i < rWords; i++ {
		x := word32(rA, i)
		total += rdiffWeighted(x ^ (x & rRight(i)))
	}
	return total
}

func domDiffAsym(domA []byte, domRight func(i int) uint32, tailA uint16, tailRight uint16) uint32 {
	var total uint32
	for i := 0; i < domWords; i++ {
		x := word32(domA, i)
		total += uint32(bits.OnesCount32(x ^ (x & domRight(i))))
	}
	total += uint32(bits.OnesCount16(tailA ^ (tailA & tailRight)))
	return total
}

// LeafVsUnion scores a leaf fingerprint against an internal-node
// union key. The comparison is asymmetric: it asks how much of the
// leaf's descriptor content is already covered by the union, not how
// similar the two are overall. This is the basis for both Penalty and
// Consistent's internal-node branch.
func LeafVsUnion(rA, domA []byte, cpA []int32, rU, domU []byte, cpU []int32) float64 {
	diffR := rDiffAsym(rA, func(i int) uint32 { return word32(rU, i) })
	diffDom := domDiffAsym(domA, func(i int) uint32 { return word32(domU, i) }, tailWord16(domA), tailWord16(domU))

	perc := float64(diffR+diffDom) / float64(MaxTotalDiff)
	conf := ((1.0 - perc) - 0.5) * 2.0
	fooid := clamp01(conf)

	cpLen := min(len(cpA), len(cpU))
	var diffCP uint32
	for k := 0; k < cpLen; k++ {
		if subsetOrLowBit(cpA[k], cpU[k]) {
			diffCP++
		}
	}
	var chroma float64
	if cpLen > 0 {
		chroma = float64(diffCP) / float64(len(cpA))
	}
	return combine(fooid, chroma)
}

// UnionVsUnion scores two internal-node union keys against each
// other, short-circuiting to zero when their song-length intervals
// don't overlap at all.
func UnionVsUnion(minA, maxA uint32, rA, domA []byte, cpA []int32, minB, maxB uint32, rB, domB []byte, cpB []int32) float64 {
	if maxA < minB || maxB < minA {
		return 0.0
	}

	diffR := rDiffAsym(rA, func(i int) uint32 { return word32(rB, i) })
	diffDom := domDiffAsym(domA, func(i int) uint32 { return word32(domB, i) }, tailWord16(domA), tailWord16(domB))

	perc := float64(diffR+diffDom) / float64(MaxTotalDiff)
	conf := ((1.0 - perc) - 0.5) * 2.0
	fooid := clamp01(conf)

	cpLen := min(len(cpA), len(cpB))
	var diffCP uint32
	for k := 0; k < cpLen; k++ {
		if subsetOrLowBit(cpA[k], cpB[k]) {
			diffCP++
		}
	}
	var chroma float64
	if cpLen > 0 {
		chroma = float64(diffCP) / float64(len(cpA))
	}
	return combine(fooid, chroma)
}

// TryMatch scores union u1 against the hypothetical union formed by
// merging u2 with leaf a, without materializing that merge. PickSplit
// uses this to evaluate which side a candidate entry should join
// without allocating a trial union for every candidate.
func TryMatch(rU1, domU1 []byte, cpU1 []int32, rU2, domU2 []byte, cpU2 []int32, rA, domA []byte, cpA []int32) float64 {
	diffR := rDiffAsym(rU1, func(i int) uint32 { return word32(rU2, i) | word32(rA, i) })
	tailRight := tailWord16(domU2) | tailWord16(domA)
	diffDom := domDiffAsym(domU1, func(i int) uint32 { return word32(domU2, i) | word32(domA, i) }, tailWord16(domU1), tailRight)

	perc := float64(diffR+diffDom) / float64(MaxTotalDiff)
	conf := ((1.0 - perc) - 0.5) * 2.0
	fooid := clamp01(conf)

	cpLen := min(min(len(cpU1), len(cpU2)), len(cpA))
	var diffCP uint32
	mergedAt := func(k int) int32 {
		return cpU2[k] | cpA[k]
	}
	for k := 0; k < cpLen; k++ {
		if subsetOrLowBit(cpU1[k], mergedAt(k)) {
			diffCP++
		}
	}
	if len(cpU1) > cpLen {
		switch {
		case len(cpA) > cpLen:
			ext := min(len(cpU1), len(cpA))
			for l := len(cpU2); l < ext; l++ {
				if subsetOrLowBit(cpU1[l], cpA[l]) {
					diffCP++
				}
			}
			cpLen = ext
		case len(cpU2) > cpLen:
			ext := min(len(cpU1), len(cpU2))
			for l := len(cpA); l < ext; l++ {
				if subsetOrLowBit(cpU1[l], cpU2[l]) {
					diffCP++
				}
			}
			cpLen = ext
		}
	}

	var chroma float64
	if cpLen > 0 {
		chroma = float64(diffCP) / float64(len(cpU1))
	}
	return combine(fooid, chroma)
}
