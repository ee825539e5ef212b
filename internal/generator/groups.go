package generator

import (
	"sort"

	"worldnav/internal/pathfinder"

	worldnav "worldnav"
)

// Seed rectangle confining flood starts to the main surface, and the
// number of distinct components that get a dedicated group id. Both are
// tunable knobs rather than hard invariants; worlds with interesting
// geometry entirely outside this rectangle (standalone instances,
// dungeons reached only by teleport) will see every vertex default to
// group 1, which simply disables the O(1) short-circuit for queries
// between them without affecting correctness.
const (
	SeedMinX = 1152
	SeedMaxX = 3903
	SeedMinY = 2496
	SeedMaxY = 4159

	MaxGroups = 126 // group ids 2..=127
)

// CreateGroups computes connectivity components reachable from the seed
// rectangle on the ground plane, assigning the MaxGroups largest a
// distinct id (2..MaxGroups+1, descending by size) so the pathfinder can
// reject cross-group queries in O(1). Vertices reachable but outside the
// top components keep the default group 1.
func CreateGroups(grid *worldnav.NavGrid) {
	visited := worldnav.NewRegionCache[bool](false)
	var groups [][]uint32

	for index := range grid.Vertices {
		vertex := &grid.Vertices[index]
		if vertex.Flags == 0 {
			continue
		}
		vertex.SetGroup(1)

		already := visited.GetMut(uint32(index))
		if *already {
			continue
		}

		c := worldnav.FromIndex(uint32(index))
		if !inSeedRectangle(c) {
			continue
		}

		var reachable []uint32
		pathfinder.Flood(grid, c, func(i uint32) bool {
			seen := visited.GetMut(i)
			if *seen {
				return false
			}
			reachable = append(reachable, i)
			*seen = true
			return true
		})
		groups = append(groups, reachable)
	}

	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i]) > len(groups[j]) })

	for rank, group := range groups {
		if rank >= MaxGroups {
			break
		}
		groupID := uint8(rank + 2)
		for _, index := range group {
			grid.Vertices[index].SetGroup(groupID)
		}
	}
}

func inSeedRectangle(c worldnav.Coordinate) bool {
	return c.Plane == 0 &&
		c.X >= SeedMinX && c.X <= SeedMaxX &&
		c.Y >= SeedMinY && c.Y <= SeedMaxY
}
