package jobctl

// indexAllocator hands out small display indices for jobs, recycling the
// indices of pruned jobs instead of growing forever. Adapted from the
// teacher's PIDAllocator (internal/infrastructure/processmgr/pid_allocator.go):
// same increment-first, skip-in-use scan, applied to the job table's own
// namespace rather than a 32768-wide kernel PID space, and without the
// wrap-around (indices have no upper ceiling).
//
// Spec §9 explicitly allows this: "Unbounded index growth in the source is
// cosmetic only; a rewrite may recycle indices after pruning without
// behavioral loss."
type indexAllocator struct {
	// low is the smallest index that might still be free; advanced lazily,
	// mirroring the kernel pidmap's increment-and-skip-in-use scan but
	// without a wrap-around ceiling (the job table has no fixed size).
	low   int
	inUse map[int]struct{}
}

func newIndexAllocator() *indexAllocator {
	return &indexAllocator{
		low:   1,
		inUse: make(map[int]struct{}),
	}
}

// alloc returns the smallest index not currently in use.
func (a *indexAllocator) alloc() int {
	for {
		if _, used := a.inUse[a.low]; !used {
			i := a.low
			a.inUse[i] = struct{}{}
			a.low++
			return i
		}
		a.low++
	}
}

// release returns an index to the free pool. No-op for an index not
// currently allocated. A released index below the current low-water mark
// moves the mark back down so it is the next one reused — this is the
// "decrement keeps small display numbers" cosmetic behavior spec §4.3
// describes, generalized into an explicit free-list scan.
func (a *indexAllocator) release(i int) {
	delete(a.inUse, i)
	if i < a.low {
		a.low = i
	}
}
