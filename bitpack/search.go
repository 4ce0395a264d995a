package bitpack

// EqSearch performs binary search over a packed, sorted, ascending
// sequence of n values and returns the index of the first entry equal to
// target, or -1 if no such entry exists.
func EqSearch(data []byte, n int, bitWidth uint8, target uint32) int {
	if n == 0 {
		return -1
	}

	found := -1
	begin, end := 0, n-1
	for begin <= end {
		mid := (begin + end + 1) / 2
		v := At(data, mid, bitWidth)

		switch {
		case v == target:
			found = mid
			end = mid - 1
		case v > target:
			end = mid - 1
		default:
			begin = mid + 1
		}
	}

	return found
}

// GeqSearch returns the index of the last element that is <= target in a
// packed, sorted, ascending sequence of n values. The loop invariant is
// begin < end with the midpoint rounded up so the search always makes
// progress and terminates with begin == end (§4.1). Callers must ensure
// n > 0; GeqSearch on an empty sequence returns 0.
func GeqSearch(data []byte, n int, bitWidth uint8, target uint32) uint32 {
	if n <= 1 {
		return 0
	}

	begin, end := uint32(0), uint32(n-1)
	for begin < end {
		mid := (begin + end + 1) / 2
		v := At(data, int(mid), bitWidth)

		if v <= target {
			begin = mid
		} else {
			end = mid - 1
		}
	}

	return begin
}
