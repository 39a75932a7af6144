package fprint

import "github.com/soundidx/gistfp/internal/utils"

// Union is an internal-node key: the bitwise-OR of every descriptor
// beneath it, plus the songlen interval (rather than a scalar) of the
// leaves it covers. Field order mirrors the original layout, where
// BitRate is sandwiched between MinSonglen and MaxSonglen.
type Union struct {
	MinSonglen uint32
	BitRate    uint32
	MaxSonglen uint32
	R          [RSize]byte
	Dom        [DomSize]byte
	Cprint     []int32
}

// NewUnion allocates a Union with a validated cprint length.
func NewUnion(cprintLen int) (*Union, error) {
	if err := utils.ValidateCprintLen(cprintLen); err != nil {
		return nil, err
	}
	return &Union{Cprint: make([]int32, cprintLen)}, nil
}

// RBytes implements DescriptorView.
func (u *Union) RBytes() []byte { return u.R[:] }

// DomBytes implements DescriptorView.
func (u *Union) DomBytes() []byte { return u.Dom[:] }

// CprintWords implements DescriptorView.
func (u *Union) CprintWords() []int32 { return u.Cprint }

// SonglenRange implements DescriptorView.
func (u *Union) SonglenRange() (min, max uint32) { return u.MinSonglen, u.MaxSonglen }

// Clone returns a deep copy.
func (u *Union) Clone() *Union {
	return &Union{
		MinSonglen: u.MinSonglen,
		BitRate:    u.BitRate,
		MaxSonglen: u.MaxSonglen,
		R:          u.R,
		Dom:        u.Dom,
		Cprint:     append([]int32(nil), u.Cprint...),
	}
}

// growCprint grows u's cprint slice to at least n elements, used
// before merging in an entry whose cprint is longer than the union's
// current key window. No cap is applied here or by the Merge methods:
// the union grows to the merged entry's full cprint length, which
// stays within MaxKeyCPLen only when every merged entry went through
// Compress.
// The replaced backing array is returned to the word pool: a union
// climbing several tree levels during a single union/merge chain can
// grow more than once, and only the final size escapes the pool.
func (u *Union) growCprint(n int) {
	if len(u.Cprint) >= n {
		return
	}
	grown := utils.GetWords(n)[:n]
	copy(grown, u.Cprint)
	clear(grown[len(u.Cprint):])
	old := u.Cprint
	u.Cprint = grown
	if old != nil {
		utils.ReleaseWords(old)
	}
}

// UnionFromFingerprint seeds a Union from a single leaf, the starting
// point for fprint_merge/fprint_merge_one's accumulation.
func UnionFromFingerprint(f *Fingerprint) *Union {
	u := &Union{
		MinSonglen: f.Songlen,
		BitRate:    f.BitRate,
		MaxSonglen: f.Songlen,
		R:          f.R,
		Dom:        f.Dom,
		Cprint:     append([]int32(nil), f.Cprint...),
	}
	return u
}

// UnionFromUnion seeds a Union as a copy of another, used when picksplit
// designates an internal-node entry as a seed.
func UnionFromUnion(src *Union) *Union {
	return src.Clone()
}

// MergeFingerprint bit-ORs a leaf into u in place: r and dom OR
// unconditionally, cprint OR over the leaf's length (growing u's
// cprint window if the leaf is longer), and the songlen interval
// widens to include the leaf. A zero MinSonglen is treated as unset,
// matching the original "first merge into a freshly calloc'd union"
// sentinel.
func (u *Union) MergeFingerprint(a *Fingerprint) {
	for i := range u.R {
		u.R[i] |= a.R[i]
	}
	for i := range u.Dom {
		u.Dom[i] |= a.Dom[i]
	}
	u.growCprint(len(a.Cprint))
	for i, w := range a.Cprint {
		u.Cprint[i] |= w
	}
	if u.MinSonglen > 0 {
		u.MinSonglen = min(u.MinSonglen, a.Songlen)
	} else {
		u.MinSonglen = a.Songlen
	}
	u.MaxSonglen = max(u.MaxSonglen, a.Songlen)
}

// MergeUnion bit-ORs another union into u in place, the internal-node
// analog of MergeFingerprint.
func (u *Union) MergeUnion(a *Union) {
	for i := range u.R {
		u.R[i] |= a.R[i]
	}
	for i := range u.Dom {
		u.Dom[i] |= a.Dom[i]
	}
	u.growCprint(len(a.Cprint))
	for i, w := range a.Cprint {
		u.Cprint[i] |= w
	}
	if u.MinSonglen > 0 {
		u.MinSonglen = min(u.MinSonglen, a.MinSonglen)
	} else {
		u.MinSonglen = a.MinSonglen
	}
	u.MaxSonglen = max(u.MaxSonglen, a.MaxSonglen)
}

// MergeTwo builds a fresh union out of two leaves: r/dom OR across
// their full width, cprint OR across the shared prefix with the
// longer one's tail carried through unmodified, and the songlen
// interval spanning both.
func MergeTwo(a, b *Fingerprint) *Union {
	cpLen := min(len(a.Cprint), len(b.Cprint))
	maxLen := max(len(a.Cprint), len(b.Cprint))
	u := &Union{Cprint: make([]int32, maxLen)}
	for i := range u.R {
		u.R[i] = a.R[i] | b.R[i]
	}
	for i := range u.Dom {
		u.Dom[i] = a.Dom[i] | b.Dom[i]
	}
	for i := 0; i < cpLen; i++ {
		u.Cprint[i] = a.Cprint[i] | b.Cprint[i]
	}
	if len(a.Cprint) > cpLen {
		copy(u.Cprint[cpLen:], a.Cprint[cpLen:])
	} else if len(b.Cprint) > cpLen {
		copy(u.Cprint[cpLen:], b.Cprint[cpLen:])
	}
	u.MinSonglen = min(a.Songlen, b.Songlen)
	u.MaxSonglen = max(a.Songlen, b.Songlen)
	return u
}
