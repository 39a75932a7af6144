package fprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFingerprintRejectsOversizedCprint(t *testing.T) {
	_, err := NewFingerprint(200_000)
	require.Error(t, err)
}

func TestNewFingerprintAllocatesZeroed(t *testing.T) {
	fp, err := NewFingerprint(10)
	require.NoError(t, err)
	assert.Len(t, fp.Cprint, 10)
	for _, w := range fp.Cprint {
		assert.Equal(t, int32(0), w)
	}
}

func TestFingerprintCloneIsIndependent(t *testing.T) {
	fp, err := NewFingerprint(4)
	require.NoError(t, err)
	fp.Songlen = 180
	fp.Cprint[0] = 42

	clone := fp.Clone()
	clone.Cprint[0] = 99
	clone.Songlen = 200

	assert.Equal(t, int32(42), fp.Cprint[0])
	assert.Equal(t, uint32(180), fp.Songlen)
	assert.Equal(t, int32(99), clone.Cprint[0])
	assert.Equal(t, uint32(200), clone.Songlen)
}

func TestFingerprintSonglenRangeCollapsesToPoint(t *testing.T) {
	fp, err := NewFingerprint(1)
	require.NoError(t, err)
	fp.Songlen = 222
	lo, hi := fp.SonglenRange()
	assert.Equal(t, uint32(222), lo)
	assert.Equal(t, uint32(222), hi)
}
