package gistops

import (
	"testing"

	"github.com/soundidx/gistfp/fprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickSplitRejectsSingleEntry(t *testing.T) {
	e := leafEntry(t, 100, 1)
	_, err := PickSplit([]Entry{e}, fprint.DefaultThresholds())
	require.Error(t, err)
}

func TestPickSplitRejectsEmptyInput(t *testing.T) {
	_, err := PickSplit(nil, fprint.DefaultThresholds())
	require.Error(t, err)
}

func TestPickSplitTwoEntriesTrivialSplit(t *testing.T) {
	a := leafEntry(t, 100, 1)
	b := leafEntry(t, 300, 2)
	res, err := PickSplit([]Entry{a, b}, fprint.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Left)
	assert.Equal(t, []int{1}, res.Right)
	assert.Equal(t, uint32(100), res.LeftUnion.MinSonglen)
	assert.Equal(t, uint32(300), res.RightUnion.MinSonglen)
}

func TestPickSplitSeparatesBySonglenSpread(t *testing.T) {
	entries := []Entry{
		leafEntry(t, 60, 1, 2),
		leafEntry(t, 65, 1, 2),
		leafEntry(t, 70, 1, 2),
		leafEntry(t, 300, 9, 9),
		leafEntry(t, 310, 9, 9),
	}
	res, err := PickSplit(entries, fprint.DefaultThresholds())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Left)
	assert.NotEmpty(t, res.Right)
	assert.Equal(t, len(entries), len(res.Left)+len(res.Right))
	// the two 300-ish-second tracks should land together, away from the 60s cluster.
	membership := map[int]bool{}
	for _, ix := range res.Left {
		membership[ix] = true
	}
	leftHasShort := membership[0]
	leftHasLong := membership[3]
	assert.NotEqual(t, leftHasShort, leftHasLong)
}

func TestPickSplitAllEqualSonglenFallsBackToPairwiseSplit(t *testing.T) {
	entries := []Entry{
		leafEntry(t, 100, 1, 2, 3),
		leafEntry(t, 100, 1, 2, 3),
		leafEntry(t, 100, 1, 2, 3),
		leafEntry(t, 100, 1, 2, 3),
	}
	res, err := PickSplit(entries, fprint.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, len(entries), len(res.Left)+len(res.Right))
	assert.NotEmpty(t, res.Left)
	assert.NotEmpty(t, res.Right)
}

func TestPickSplitInternalNodeEntries(t *testing.T) {
	mkUnion := func(lo, hi uint32, cp ...int32) Entry {
		u, err := fprint.NewUnion(len(cp))
		require.NoError(t, err)
		u.MinSonglen, u.MaxSonglen = lo, hi
		copy(u.Cprint, cp)
		return Entry{IsLeaf: false, Un: u}
	}
	entries := []Entry{
		mkUnion(50, 60, 1, 2),
		mkUnion(55, 65, 1, 2),
		mkUnion(280, 300, 9, 9),
		mkUnion(290, 310, 9, 9),
	}
	res, err := PickSplit(entries, fprint.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, len(entries), len(res.Left)+len(res.Right))
}
