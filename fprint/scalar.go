package fprint

import "github.com/soundidx/gistfp/internal/descriptor"

// Strategy numbers, matching the operator class's catalog entries.
const (
	StrategyEQ   = 3
	StrategySame = 6
	StrategyNEQ  = 12
)

// Cmp returns the raw match confidence between two fingerprints, in
// [0, 1]. It's the basis every other scalar operator and the leaf
// branch of Consistent builds on.
func Cmp(a, b *Fingerprint) float64 {
	return descriptor.LeafVsLeaf(a.Songlen, b.Songlen, a.R[:], a.Dom[:], a.Cprint, b.R[:], b.Dom[:], b.Cprint)
}

// Eq reports whether a and b score above ExactCutoff: a high degree
// of certainty, practically identical audio.
func Eq(a, b *Fingerprint, t Thresholds) bool {
	return Cmp(a, b) > t.ExactCutoff
}

// Neq is the complement of Eq.
func Neq(a, b *Fingerprint, t Thresholds) bool {
	return Cmp(a, b) <= t.ExactCutoff
}

// Match reports whether a and b score above MatchCutoff: the
// system's general probabilistic-match threshold.
func Match(a, b *Fingerprint, t Thresholds) bool {
	return Cmp(a, b) > t.MatchCutoff
}

// Songlen returns a fingerprint's song length attribute.
func Songlen(f *Fingerprint) uint32 { return f.Songlen }

// NumErrors returns a fingerprint's recorded decode-error count.
func NumErrors(f *Fingerprint) uint32 { return f.NumErrors }
