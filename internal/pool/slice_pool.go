package pool

import "sync"

// Slice pools for efficient reuse of typed scratch slices. The uint32
// pool holds a section's key deltas before they are bit-packed; no
// package of the module draws from the uint64 pool.
var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
)

// GetUint32Slice retrieves a zero-length, pre-capacity uint32 slice from
// the pool. The caller must call the returned cleanup function (typically
// with defer) to return the backing array to the pool.
func GetUint32Slice(capacity int) ([]uint32, func([]uint32)) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]
	if cap(slice) < capacity {
		slice = make([]uint32, 0, capacity)
	}

	return slice, func(final []uint32) {
		*ptr = final[:0]
		uint32SlicePool.Put(ptr)
	}
}

// GetUint64Slice retrieves a zero-length, pre-capacity uint64 slice from
// the pool. The caller must call the returned cleanup function (typically
// with defer) to return the backing array to the pool.
func GetUint64Slice(capacity int) ([]uint64, func([]uint64)) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]
	if cap(slice) < capacity {
		slice = make([]uint64, 0, capacity)
	}

	return slice, func(final []uint64) {
		*ptr = final[:0]
		uint64SlicePool.Put(ptr)
	}
}
