package worldnav

import "unsafe"

// RegionCache is a sparse view over the full world index space. It
// conceptually behaves like a function index -> T, but only allocates
// backing storage for the 64x64 regions that have actually been touched by a
// mutable access. Reading an untouched region is cheap and does not
// allocate.
//
// A RegionCache is not safe for concurrent use; the pathfinder and generator
// each own a private instance for the duration of a single run or query.
type RegionCache[T any] struct {
	defaultValue T
	regions      []*[RegionSize * RegionSize]T
}

// NewRegionCache constructs a RegionCache whose cells default to
// defaultValue once their region is allocated.
func NewRegionCache[T any](defaultValue T) *RegionCache[T] {
	return &RegionCache[T]{
		defaultValue: defaultValue,
		regions:      make([]*[RegionSize * RegionSize]T, HorizontalRegions*VerticalRegions*Planes),
	}
}

// regionOffset decomposes a world index into the region slot and the
// cell offset within that region. Index already encodes the plane via its
// y-like component (index/Width ranges over plane*Height+y), so a single
// division by RegionSize folds plane and y together without needing a
// separate plane term in the region slot formula.
func regionOffset(index uint32) (region, offset uint32) {
	x := index % Width
	y := index / Width
	region = (y/RegionSize)*HorizontalRegions + x/RegionSize
	offset = (y%RegionSize)*RegionSize + x%RegionSize
	return region, offset
}

// Get returns the stored value, or false if the containing region has never
// been written.
func (c *RegionCache[T]) Get(index uint32) (T, bool) {
	region, offset := regionOffset(index)
	slot := c.regions[region]
	if slot == nil {
		var zero T
		return zero, false
	}
	return slot[offset], true
}

// GetOrDefault returns the stored value, or the configured default if the
// containing region has never been written.
func (c *RegionCache[T]) GetOrDefault(index uint32) T {
	if value, ok := c.Get(index); ok {
		return value
	}
	return c.defaultValue
}

// GetMut allocates the containing region (zero-filled with the default
// value) if necessary and returns a pointer to the cell for in-place
// mutation.
func (c *RegionCache[T]) GetMut(index uint32) *T {
	region, offset := regionOffset(index)
	slot := c.regions[region]
	if slot == nil {
		slot = new([RegionSize * RegionSize]T)
		for i := range slot {
			slot[i] = c.defaultValue
		}
		c.regions[region] = slot
	}
	return &slot[offset]
}

// MemUsage reports the approximate number of bytes backing allocated
// regions, for observability only.
func (c *RegionCache[T]) MemUsage() uintptr {
	var zero T
	regionBytes := uintptr(RegionSize*RegionSize) * unsafe.Sizeof(zero)
	var total uintptr
	for _, slot := range c.regions {
		if slot != nil {
			total += regionBytes
		}
	}
	return total
}
