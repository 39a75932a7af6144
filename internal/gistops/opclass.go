package gistops

import "github.com/soundidx/gistfp/fprint"

// NewOperatorClass binds this package's seven callbacks into a
// fprint.OperatorClass, the form a host registers once at startup.
func NewOperatorClass() fprint.OperatorClass {
	return fprint.OperatorClass{
		Compress: func(isLeaf, freshInsert bool, fp *fprint.Fingerprint, un *fprint.Union) (*fprint.Fingerprint, *fprint.Union) {
			e := Compress(Entry{IsLeaf: isLeaf, FreshInsert: freshInsert, Fp: fp, Un: un})
			return e.Fp, e.Un
		},
		Decompress: func(isLeaf bool, fp *fprint.Fingerprint, un *fprint.Union) (*fprint.Fingerprint, *fprint.Union) {
			e := Decompress(Entry{IsLeaf: isLeaf, Fp: fp, Un: un})
			return e.Fp, e.Un
		},
		Union: func(isLeaf []bool, fps []*fprint.Fingerprint, uns []*fprint.Union) (*fprint.Union, error) {
			entries := entriesFromSlices(isLeaf, fps, uns)
			result, err := Union(entries)
			if err != nil {
				return nil, err
			}
			return result.Value, nil
		},
		Same:    Same,
		Penalty: Penalty,
		PickSplit: func(isLeaf []bool, fps []*fprint.Fingerprint, uns []*fprint.Union, t fprint.Thresholds) ([]int, []int, *fprint.Union, *fprint.Union, error) {
			entries := entriesFromSlices(isLeaf, fps, uns)
			res, err := PickSplit(entries, t)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			return res.Left, res.Right, res.LeftUnion, res.RightUnion, nil
		},
		Consistent: func(isLeaf bool, fp *fprint.Fingerprint, un *fprint.Union, query *fprint.Fingerprint, strategy int, t fprint.Thresholds) (bool, bool) {
			return Consistent(Entry{IsLeaf: isLeaf, Fp: fp, Un: un}, query, strategy, t)
		},
	}
}

func entriesFromSlices(isLeaf []bool, fps []*fprint.Fingerprint, uns []*fprint.Union) []Entry {
	entries := make([]Entry, len(isLeaf))
	for i := range isLeaf {
		entries[i] = Entry{IsLeaf: isLeaf[i], Fp: fps[i], Un: uns[i]}
	}
	return entries
}
