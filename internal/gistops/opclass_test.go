package gistops

import (
	"testing"

	"github.com/soundidx/gistfp/fprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorClassUnionMatchesDirectCall(t *testing.T) {
	a := leafEntry(t, 100, 0b0001)
	b := leafEntry(t, 200, 0b0010)

	oc := NewOperatorClass()
	got, err := oc.Union([]bool{true, true}, []*fprint.Fingerprint{a.Fp, b.Fp}, []*fprint.Union{nil, nil})
	require.NoError(t, err)

	want, err := Union([]Entry{a, b})
	require.NoError(t, err)

	assert.Equal(t, want.Value, got)
}

func TestOperatorClassConsistentMatchesDirectCall(t *testing.T) {
	query := leafEntry(t, 150, 1, 2, 4).Fp
	target := leafEntry(t, 150, 1, 2, 4)
	th := fprint.DefaultThresholds()

	oc := NewOperatorClass()
	retval, recheck := oc.Consistent(target.IsLeaf, target.Fp, target.Un, query, fprint.StrategyEQ, th)
	wantRetval, wantRecheck := Consistent(target, query, fprint.StrategyEQ, th)

	assert.Equal(t, wantRetval, retval)
	assert.Equal(t, wantRecheck, recheck)
}

func TestOperatorClassPickSplitMatchesDirectCall(t *testing.T) {
	entries := []Entry{
		leafEntry(t, 50, 1),
		leafEntry(t, 500, 2),
		leafEntry(t, 1000, 4),
	}
	isLeaf := make([]bool, len(entries))
	fps := make([]*fprint.Fingerprint, len(entries))
	uns := make([]*fprint.Union, len(entries))
	for i, e := range entries {
		isLeaf[i], fps[i], uns[i] = e.IsLeaf, e.Fp, e.Un
	}

	th := fprint.DefaultThresholds()
	oc := NewOperatorClass()
	left, right, leftUnion, rightUnion, err := oc.PickSplit(isLeaf, fps, uns, th)
	require.NoError(t, err)

	want, err := PickSplit(entries, th)
	require.NoError(t, err)

	assert.Equal(t, want.Left, left)
	assert.Equal(t, want.Right, right)
	assert.Equal(t, want.LeftUnion, leftUnion)
	assert.Equal(t, want.RightUnion, rightUnion)
}
