package fprint

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintMarshalUnmarshalRoundTrip(t *testing.T) {
	fp, err := NewFingerprint(5)
	require.NoError(t, err)
	fp.Songlen = 180
	fp.BitRate = 256
	fp.NumErrors = 1
	fp.R[10] = 0x42
	fp.Dom[5] = 0x99
	fp.Cprint = []int32{1, -2, 3, -4, 5}

	buf, err := fp.MarshalBinary()
	require.NoError(t, err)

	var got Fingerprint
	require.NoError(t, got.UnmarshalBinary(buf))
	assert.Equal(t, *fp, got)
}

func TestFingerprintMarshalSizeHeaderIncludesItself(t *testing.T) {
	fp, err := NewFingerprint(5)
	require.NoError(t, err)

	buf, err := fp.MarshalBinary()
	require.NoError(t, err)

	header := binary.NativeEndian.Uint32(buf[0:4])
	assert.Equal(t, uint32(len(buf)), header)
}

func TestFingerprintUnmarshalRejectsShortBuffer(t *testing.T) {
	var fp Fingerprint
	err := fp.UnmarshalBinary([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestFingerprintUnmarshalRejectsSizeMismatch(t *testing.T) {
	fp, _ := NewFingerprint(2)
	buf, err := fp.MarshalBinary()
	require.NoError(t, err)
	truncated := buf[:len(buf)-4]

	var got Fingerprint
	err = got.UnmarshalBinary(truncated)
	require.Error(t, err)
}

func TestUnionMarshalUnmarshalRoundTrip(t *testing.T) {
	u, err := NewUnion(3)
	require.NoError(t, err)
	u.MinSonglen = 10
	u.MaxSonglen = 20
	u.BitRate = 128
	u.Cprint = []int32{9, 8, 7}

	buf, err := u.MarshalBinary()
	require.NoError(t, err)

	var got Union
	require.NoError(t, got.UnmarshalBinary(buf))
	assert.Equal(t, *u, got)
}

func TestUnionMarshalSizeHeaderIncludesItself(t *testing.T) {
	u, err := NewUnion(3)
	require.NoError(t, err)

	buf, err := u.MarshalBinary()
	require.NoError(t, err)

	header := binary.NativeEndian.Uint32(buf[0:4])
	assert.Equal(t, uint32(len(buf)), header)
}
