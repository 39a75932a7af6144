package gistops

import (
	"testing"

	"github.com/soundidx/gistfp/fprint"
	"github.com/soundidx/gistfp/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafEntry(t *testing.T, songlen uint32, cp ...int32) Entry {
	t.Helper()
	fp, err := fprint.NewFingerprint(len(cp))
	require.NoError(t, err)
	fp.Songlen = songlen
	copy(fp.Cprint, cp)
	return Entry{IsLeaf: true, Fp: fp}
}

func TestCompressOnlyAppliesToFreshLeafInserts(t *testing.T) {
	cp := make([]int32, 1000)
	for i := range cp {
		cp[i] = int32(i)
	}
	e := leafEntry(t, 240, cp...)
	e.FreshInsert = true

	out := Compress(e)
	assert.Len(t, out.Fp.Cprint, fprint.MaxKeyCPLen)

	notFresh := leafEntry(t, 240, cp...)
	out2 := Compress(notFresh)
	assert.Len(t, out2.Fp.Cprint, len(cp))
}

func TestUnionAccumulatesAcrossLeaves(t *testing.T) {
	a := leafEntry(t, 100, 0b0001)
	b := leafEntry(t, 200, 0b0010)
	result, err := Union([]Entry{a, b})
	require.NoError(t, err)
	assert.True(t, result.IsOwned())
	u := result.Value
	assert.Equal(t, uint32(100), u.MinSonglen)
	assert.Equal(t, uint32(200), u.MaxSonglen)
	assert.Equal(t, []int32{0b0011}, u.Cprint)
}

func TestUnionRejectsEmptyInput(t *testing.T) {
	_, err := Union(nil)
	require.Error(t, err)
}

func TestUnionOfSingleInternalEntryIsBorrowed(t *testing.T) {
	u, err := fprint.NewUnion(2)
	require.NoError(t, err)
	u.MinSonglen, u.MaxSonglen = 10, 20
	e := Entry{IsLeaf: false, Un: u}

	result, err := Union([]Entry{e})
	require.NoError(t, err)
	assert.False(t, result.IsOwned())
	assert.Same(t, u, result.Value)
}

func TestSameReportsTrueForByteIdenticalContent(t *testing.T) {
	a := leafEntry(t, 100, 1, 2, 3).Fp
	b := leafEntry(t, 200, 4, 5, 6).Fp
	u := fprint.MergeTwo(a, b)
	v := u.Clone()
	assert.True(t, Same(u, v))
}

func TestSameReportsFalseOnContentDifference(t *testing.T) {
	a := leafEntry(t, 100, 1, 2, 3).Fp
	b := leafEntry(t, 200, 4, 5, 6).Fp
	u := fprint.MergeTwo(a, b)
	v := u.Clone()
	v.Cprint[0] = 99
	assert.False(t, Same(u, v))
}

func TestSameReportsFalseOnDifferentSonglenInterval(t *testing.T) {
	a := leafEntry(t, 100, 1, 2, 3).Fp
	b := leafEntry(t, 200, 4, 5, 6).Fp
	u := fprint.MergeTwo(a, b)
	v := u.Clone()
	v.MaxSonglen = 999
	assert.False(t, Same(u, v))
}

func TestSameImpliesPerfectUnionMatch(t *testing.T) {
	a := leafEntry(t, 100, 1, 2, 3).Fp
	b := leafEntry(t, 200, 4, 5, 6).Fp
	u := fprint.MergeTwo(a, b)
	v := u.Clone()

	require.True(t, Same(u, v))
	score := descriptor.UnionVsUnion(u.MinSonglen, u.MaxSonglen, u.R[:], u.Dom[:], u.Cprint,
		v.MinSonglen, v.MaxSonglen, v.R[:], v.Dom[:], v.Cprint)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestPenaltyNilInputsAreMaximal(t *testing.T) {
	fp := leafEntry(t, 100, 1).Fp
	assert.Equal(t, 1e10, Penalty(nil, fp))
	u := fprint.UnionFromFingerprint(fp)
	assert.Equal(t, 1e10, Penalty(u, nil))
}

func TestPenaltyIsZeroForAlreadyCoveredInsert(t *testing.T) {
	fp := leafEntry(t, 150, 1, 2, 4).Fp
	u := fprint.UnionFromFingerprint(fp)
	assert.InDelta(t, 0.0, Penalty(u, fp), 1e-6)
}

func TestConsistentLeafStrategies(t *testing.T) {
	query := leafEntry(t, 150, 1, 2, 4).Fp
	target := leafEntry(t, 150, 1, 2, 4)
	th := fprint.DefaultThresholds()

	retval, recheck := Consistent(target, query, fprint.StrategyEQ, th)
	assert.True(t, retval)
	assert.False(t, recheck)

	retval, _ = Consistent(target, query, fprint.StrategyNEQ, th)
	assert.False(t, retval)
}

func TestConsistentInternalNodeAlwaysRechecks(t *testing.T) {
	query := leafEntry(t, 150, 1, 2, 4).Fp
	fp := leafEntry(t, 150, 1, 2, 4).Fp
	u := fprint.UnionFromFingerprint(fp)
	target := Entry{IsLeaf: false, Un: u}
	th := fprint.DefaultThresholds()

	retval, recheck := Consistent(target, query, fprint.StrategySame, th)
	assert.True(t, retval)
	assert.True(t, recheck)
}

func TestConsistentNilQueryRejects(t *testing.T) {
	target := leafEntry(t, 150, 1)
	retval, recheck := Consistent(target, nil, fprint.StrategySame, fprint.DefaultThresholds())
	assert.False(t, retval)
	assert.False(t, recheck)
}
