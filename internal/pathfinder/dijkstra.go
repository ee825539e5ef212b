package pathfinder

import (
	"errors"

	worldnav "worldnav"
)

// Step is a single hop in a returned path: either a grid cell entered via
// plain adjacency, or a traversal via a non-grid edge (door, teleport,
// scripted transition).
type Step struct {
	Edge       worldnav.EdgeDefinition // non-nil iff this step used an extra edge
	Coordinate worldnav.Coordinate     // valid iff Edge is nil
}

type cacheState struct {
	cost     uint32
	prev     uint32
	edgeDef  worldnav.EdgeDefinition
	hasEdge  bool
	hasValue bool
}

const infiniteCost = ^uint32(0)

func defaultCacheState() cacheState {
	return cacheState{cost: infiniteCost, prev: infiniteCost}
}

// Dijkstra finds the least-cost path from start to end under gameState,
// returning (nil, 0) if no path exists. The search is gated by the
// precomputed connectivity group: if start and end sit in different
// groups, this returns immediately without touching the queue.
func Dijkstra(grid *worldnav.NavGrid, start, end worldnav.Coordinate, gameState worldnav.GameState) ([]Step, uint32) {
	startIndex := start.Index()
	endIndex := end.Index()

	if grid.Vertex(startIndex).Group() != grid.Vertex(endIndex).Group() {
		return nil, 0
	}

	maxCost := maxEdgeCost(grid)
	queue := newBucketQueue(maxCost)
	cache := worldnav.NewRegionCache[cacheState](defaultCacheState())

	startState := cache.GetMut(startIndex)
	startState.cost = 0
	startState.hasValue = true
	queue.push(0, startIndex)

	for _, teleport := range grid.Teleports {
		if !worldnav.RequirementsMet(teleport.Requirements, gameState) {
			continue
		}
		destIndex := teleport.Destination.Index()
		dest := cache.GetMut(destIndex)
		if teleport.Cost < dest.cost {
			dest.cost = teleport.Cost
			dest.prev = startIndex
			dest.edgeDef = teleport.Definition
			dest.hasEdge = true
			dest.hasValue = true
			queue.push(teleport.Cost, destIndex)
		}
	}

	for {
		index, cost, ok := queue.pop()
		if !ok {
			return nil, 0
		}

		if index == endIndex {
			return reconstructPath(cache, startIndex, endIndex), cost
		}

		v := grid.Vertex(index)
		for _, d := range worldnav.Directions {
			if v.Flags&d.Flag == 0 {
				continue
			}
			adjIndex := neighborIndex(index, d)
			adj := cache.GetMut(adjIndex)
			if cost+1 < adj.cost {
				adj.cost = cost + 1
				adj.prev = index
				adj.hasEdge = false
				adj.hasValue = true
				queue.push(adj.cost, adjIndex)
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
				if !worldnav.RequirementsMet(edge.Requirements, gameState) {
					continue
				}
				destIndex := edge.Destination.Index()
				adj := cache.GetMut(destIndex)
				if cost+edge.Cost < adj.cost {
					adj.cost = cost + edge.Cost
					adj.prev = index
					adj.edgeDef = edge.Definition
					adj.hasEdge = true
					adj.hasValue = true
					queue.push(adj.cost, destIndex)
				}
			}
		}
	}
}

func reconstructPath(cache *worldnav.RegionCache[cacheState], startIndex, endIndex uint32) []Step {
	var path []Step
	index := endIndex
	for index != startIndex {
		state, _ := cache.Get(index)
		if state.hasEdge {
			path = append(path, Step{Edge: state.edgeDef})
		} else {
			path = append(path, Step{Coordinate: worldnav.FromIndex(index)})
		}
		index = state.prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// maxEdgeCost bounds the bucket ring's width: the largest cost any single
// relaxation can add, across grid steps (always 1), extra edges, and
// teleports.
func maxEdgeCost(grid *worldnav.NavGrid) uint32 {
	maxCost := uint32(1)
	for _, edges := range grid.Edges {
		for _, edge := range edges {
			if edge.Cost > maxCost {
				maxCost = edge.Cost
			}
		}
	}
	for _, teleport := range grid.Teleports {
		if teleport.Cost > maxCost {
			maxCost = teleport.Cost
		}
	}
	return maxCost
}
