package jobctl

import "testing"

import "github.com/stretchr/testify/require"

func TestIndexAllocatorReusesSmallest(t *testing.T) {
	a := newIndexAllocator()
	i1 := a.alloc()
	i2 := a.alloc()
	i3 := a.alloc()
	require.Equal(t, []int{1, 2, 3}, []int{i1, i2, i3})

	a.release(i2)
	i4 := a.alloc()
	require.Equal(t, i2, i4, "released index should be reused before growing")

	i5 := a.alloc()
	require.Equal(t, 4, i5)
}

func TestIndexAllocatorReleaseUnknownIsNoop(t *testing.T) {
	a := newIndexAllocator()
	a.release(99)
	require.Equal(t, 1, a.alloc())
}
