package pathfinder

import (
	"sort"
	"testing"

	worldnav "worldnav"
)

func smallGrid(width, height uint16) *worldnav.NavGrid {
	size := uint32(height)*worldnav.Width + uint32(width)
	return &worldnav.NavGrid{
		Vertices: make([]worldnav.Vertex, size),
		Edges:    make(map[uint32][]worldnav.Edge),
	}
}

func TestFloodVisitsConnectedComponentOnly(t *testing.T) {
	grid := smallGrid(10, 10)

	a := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	b := worldnav.Coordinate{X: 2, Y: 1, Plane: 0}
	c := worldnav.Coordinate{X: 3, Y: 1, Plane: 0}
	isolated := worldnav.Coordinate{X: 8, Y: 8, Plane: 0}

	av := grid.Vertex(a.Index())
	av.Flags |= worldnav.FlagE
	grid.Vertices[a.Index()] = av

	bv := grid.Vertex(b.Index())
	bv.Flags |= worldnav.FlagW | worldnav.FlagE
	grid.Vertices[b.Index()] = bv

	cv := grid.Vertex(c.Index())
	cv.Flags |= worldnav.FlagW
	grid.Vertices[c.Index()] = cv

	// isolated has no flags at all and is never reached from a.

	var visited []uint32
	Flood(grid, a, func(index uint32) bool {
		visited = append(visited, index)
		return true
	})

	sort.Slice(visited, func(i, j int) bool { return visited[i] < visited[j] })
	want := []uint32{a.Index(), b.Index(), c.Index()}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	if len(visited) != len(want) {
		t.Fatalf("expected %d visited vertices, got %d: %v", len(want), len(visited), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited set mismatch: got %v, want %v", visited, want)
		}
	}
	for _, v := range visited {
		if v == isolated.Index() {
			t.Fatal("flood reached an isolated vertex with no connecting flags")
		}
	}
}

func TestFloodFollowsExtraEdges(t *testing.T) {
	grid := smallGrid(10, 10)

	a := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	door := worldnav.Coordinate{X: 9, Y: 9, Plane: 0}

	av := grid.Vertex(a.Index())
	av.SetExtraEdges(true)
	grid.Vertices[a.Index()] = av

	grid.AddEdge(a.Index(), worldnav.Edge{
		Destination: door,
		Cost:        2,
		Definition:  worldnav.DoorEdge{ID: 1, Position: a, Action: worldnav.MustPattern("^Open$")},
	})

	reached := false
	Flood(grid, a, func(index uint32) bool {
		if index == door.Index() {
			reached = true
		}
		return true
	})

	if !reached {
		t.Fatal("expected flood to follow the extra edge to the door's destination")
	}
}

func TestFloodPanicsWithIntegrityErrorOnCorruptExtraEdgeFlag(t *testing.T) {
	grid := smallGrid(10, 10)

	a := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	av := grid.Vertex(a.Index())
	av.SetExtraEdges(true)
	grid.Vertices[a.Index()] = av
	// No edge is ever added for a: the multimap has no entry despite the
	// flag, which should be treated as a corrupt NavGrid, not a no-op.

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected Flood to panic on a corrupt extra-edges flag")
		}
		if _, ok := rec.(*worldnav.IntegrityError); !ok {
			t.Fatalf("expected panic value *worldnav.IntegrityError, got %T", rec)
		}
	}()
	Flood(grid, a, func(index uint32) bool { return true })
}
