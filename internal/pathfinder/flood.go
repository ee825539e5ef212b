package pathfinder

import (
	"errors"

	worldnav "worldnav"
)

// Visitor decides whether to expand neighbors from a vertex index; it is
// called at most once per reachable index, in BFS discovery order.
// Returning false still marks the index visited but stops it from being
// expanded further.
type Visitor func(index uint32) bool

// Flood runs a breadth-first search over grid adjacency plus extra edges,
// starting at start, calling visit once per discovered index. It is the
// primitive the generator's connectivity-group computation is built on.
func Flood(grid *worldnav.NavGrid, start worldnav.Coordinate, visit Visitor) {
	visited := worldnav.NewRegionCache[bool](false)
	queue := []uint32{start.Index()}
	*visited.GetMut(start.Index()) = true

	for len(queue) > 0 {
		index := queue[0]
		queue = queue[1:]

		v := grid.Vertex(index)
		if !visit(index) {
			continue
		}

		for _, d := range worldnav.Directions {
			if v.Flags&d.Flag == 0 {
				continue
			}
			adj := neighborIndex(index, d)
			seen := visited.GetMut(adj)
			if !*seen {
				*seen = true
				queue = append(queue, adj)
			}
		}

		if v.HasExtraEdges() {
			edges := grid.EdgesFrom(index)
			if len(edges) == 0 {
				panic(&worldnav.IntegrityError{
					Index: index,
					Cause: errors.New("vertex claims extra edges but the multimap has no entry for it"),
				})
			}
			for _, edge := range edges {
				dest := edge.Destination.Index()
				seen := visited.GetMut(dest)
				if !*seen {
					*seen = true
					queue = append(queue, dest)
				}
			}
		}
	}
}

// neighborIndex computes the linear index of the tile in direction d from
// index, using wraparound uint32 arithmetic identical to the index
// encoding's own plane*W*H + y*W + x layout; the result is only meaningful
// when the destination coordinate has already been validated (callers only
// reach here for directions the vertex's own flags marked walkable, which
// transform_flags only does for validated destinations).
func neighborIndex(index uint32, d worldnav.Direction) uint32 {
	return index + uint32(d.DY)*worldnav.Width + uint32(d.DX)
}
