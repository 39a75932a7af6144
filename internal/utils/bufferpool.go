package utils

import "sync"

var bytePool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 4096)
	},
}

var wordPool = sync.Pool{
	New: func() interface{} {
		return make([]int32, 0, 256)
	},
}

// GetBuffer returns a zero-length byte slice with at least size
// capacity, drawn from the pool when possible. Nothing in this module
// calls it at present; the codecs and PickSplit allocate directly.
func GetBuffer(size int) []byte {
	buf := bytePool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, 0, size)
	}
	return buf[:0]
}

// ReleaseBuffer returns a buffer obtained from GetBuffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bytePool.Put(buf[:0])
}

// GetWords returns a zero-length int32 slice with at least size
// capacity, for cprint scratch accumulation during union/merge.
func GetWords(size int) []int32 {
	buf := wordPool.Get().([]int32)
	if cap(buf) < size {
		return make([]int32, 0, size)
	}
	return buf[:0]
}

// ReleaseWords returns a buffer obtained from GetWords to the pool.
func ReleaseWords(buf []int32) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	wordPool.Put(buf[:0])
}

// OwnedOrBorrowed wraps a value that may either have been freshly
// allocated by the callee (owned) or aliased from caller-supplied
// storage (borrowed). Release only returns owned values to the pool,
// mirroring the "free if copy" pointer-identity rule: a value that
// was never copied must not be released out from under its owner.
type OwnedOrBorrowed[T any] struct {
	Value T
	owned bool
	free  func(T)
}

// Owned wraps a freshly allocated value that Release must dispose of.
func Owned[T any](v T, free func(T)) OwnedOrBorrowed[T] {
	return OwnedOrBorrowed[T]{Value: v, owned: true, free: free}
}

// Borrowed wraps a value this call site does not own; Release is a
// no-op.
func Borrowed[T any](v T) OwnedOrBorrowed[T] {
	return OwnedOrBorrowed[T]{Value: v, owned: false}
}

// Release disposes of the wrapped value if it is owned.
func (o OwnedOrBorrowed[T]) Release() {
	if o.owned && o.free != nil {
		o.free(o.Value)
	}
}

// IsOwned reports whether Release will actually free the value.
func (o OwnedOrBorrowed[T]) IsOwned() bool {
	return o.owned
}
