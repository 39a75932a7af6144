// Package fprint implements the audio fingerprint value type, its
// internal-node union counterpart, the key-compression scheme, and
// the external (text and binary) representations the host stores and
// queries against. The scoring itself lives in internal/descriptor;
// this package owns layout, validation, and the GiST-facing surface.
package fprint

import (
	"github.com/soundidx/gistfp/internal/descriptor"
	"github.com/soundidx/gistfp/internal/utils"
)

const (
	// RSize is the byte length of the r (scaled-Hamming) descriptor.
	RSize = descriptor.RSize
	// DomSize is the byte length of the dom (popcount-Hamming) descriptor.
	DomSize = descriptor.DomSize
)

// Fingerprint is a leaf-node value: one audio track's descriptors.
type Fingerprint struct {
	Songlen   uint32
	BitRate   uint32
	NumErrors uint32
	R         [RSize]byte
	Dom       [DomSize]byte
	Cprint    []int32
}

// NewFingerprint allocates a Fingerprint with a validated cprint
// length, with R and Dom left zeroed for the caller to fill in.
func NewFingerprint(cprintLen int) (*Fingerprint, error) {
	if err := utils.ValidateCprintLen(cprintLen); err != nil {
		return nil, err
	}
	return &Fingerprint{Cprint: make([]int32, cprintLen)}, nil
}

// RBytes implements DescriptorView.
func (f *Fingerprint) RBytes() []byte { return f.R[:] }

// DomBytes implements DescriptorView.
func (f *Fingerprint) DomBytes() []byte { return f.Dom[:] }

// CprintWords implements DescriptorView.
func (f *Fingerprint) CprintWords() []int32 { return f.Cprint }

// SonglenRange implements DescriptorView: a leaf's interval collapses
// to a single point.
func (f *Fingerprint) SonglenRange() (min, max uint32) { return f.Songlen, f.Songlen }

// Clone returns a deep copy that shares no cprint storage with f.
func (f *Fingerprint) Clone() *Fingerprint {
	out := &Fingerprint{
		Songlen:   f.Songlen,
		BitRate:   f.BitRate,
		NumErrors: f.NumErrors,
		R:         f.R,
		Dom:       f.Dom,
		Cprint:    append([]int32(nil), f.Cprint...),
	}
	return out
}
