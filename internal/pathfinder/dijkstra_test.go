package pathfinder

import (
	"testing"

	worldnav "worldnav"
)

// sameGroup marks the whole small grid as a single connectivity group so
// Dijkstra's group-gate doesn't short-circuit tests that never ran
// CreateGroups.
func sameGroup(grid *worldnav.NavGrid, group uint8) {
	for i := range grid.Vertices {
		grid.Vertices[i].SetGroup(group)
	}
}

func TestDijkstraTwoCardinalStepsToDiagonalNeighborCostsTwo(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	mid := worldnav.Coordinate{X: 2, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 2, Y: 2, Plane: 0}

	sv := grid.Vertex(start.Index())
	sv.Flags |= worldnav.FlagE
	grid.Vertices[start.Index()] = sv

	mv := grid.Vertex(mid.Index())
	mv.Flags |= worldnav.FlagW | worldnav.FlagN
	grid.Vertices[mid.Index()] = mv

	path, cost := Dijkstra(grid, start, end, worldnav.NewGameState())
	if len(path) != 2 {
		t.Fatalf("expected a 2-step path, got %d steps: %+v", len(path), path)
	}
	if path[0].Coordinate != mid || path[1].Coordinate != end {
		t.Fatalf("unexpected path: %+v", path)
	}
	if cost != 2 {
		t.Fatalf("expected total cost 2, got %d", cost)
	}
}

func TestDijkstraWallForcesLongerDetour(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	blocked := worldnav.Coordinate{X: 2, Y: 1, Plane: 0}
	detour := worldnav.Coordinate{X: 1, Y: 2, Plane: 0}
	detour2 := worldnav.Coordinate{X: 2, Y: 2, Plane: 0}
	end := worldnav.Coordinate{X: 3, Y: 1, Plane: 0}

	// A route east exists only via the detour; start deliberately has no
	// FlagE, forcing a path up, across, and diagonally back down.
	sv := grid.Vertex(start.Index())
	sv.Flags |= worldnav.FlagN
	grid.Vertices[start.Index()] = sv

	dv := grid.Vertex(detour.Index())
	dv.Flags |= worldnav.FlagS | worldnav.FlagE
	grid.Vertices[detour.Index()] = dv

	d2v := grid.Vertex(detour2.Index())
	d2v.Flags |= worldnav.FlagW | worldnav.FlagSE
	grid.Vertices[detour2.Index()] = d2v

	ev := grid.Vertex(end.Index())
	ev.Flags |= worldnav.FlagW | worldnav.FlagN
	grid.Vertices[end.Index()] = ev

	// blocked stays fully unflagged; nothing routes through it.
	_ = blocked

	path, cost := Dijkstra(grid, start, end, worldnav.NewGameState())
	if len(path) != 3 {
		t.Fatalf("expected a 3-step detour, got %d steps: %+v", len(path), path)
	}
	if cost != 3 {
		t.Fatalf("expected total cost 3, got %d", cost)
	}
}

func TestDijkstraDoorEdgePath(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 9, Y: 9, Plane: 0}

	sv := grid.Vertex(start.Index())
	sv.SetExtraEdges(true)
	grid.Vertices[start.Index()] = sv

	grid.AddEdge(start.Index(), worldnav.Edge{
		Destination: end,
		Cost:        2,
		Definition:  worldnav.DoorEdge{ID: 1, Position: start, Action: worldnav.MustPattern("^Open$")},
	})

	path, cost := Dijkstra(grid, start, end, worldnav.NewGameState())
	if len(path) != 1 {
		t.Fatalf("expected a single door step, got %d steps: %+v", len(path), path)
	}
	door, ok := path[0].Edge.(worldnav.DoorEdge)
	if !ok {
		t.Fatalf("expected DoorEdge step, got %T", path[0].Edge)
	}
	if door.ID != 1 {
		t.Fatalf("expected door id 1, got %d", door.ID)
	}
	if cost != 2 {
		t.Fatalf("expected total cost 2, got %d", cost)
	}
}

func TestDijkstraReturnsNilForDisjointGroups(t *testing.T) {
	grid := smallGrid(10, 10)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 8, Y: 8, Plane: 0}

	sv := grid.Vertex(start.Index())
	sv.SetGroup(1)
	grid.Vertices[start.Index()] = sv

	ev := grid.Vertex(end.Index())
	ev.SetGroup(2)
	grid.Vertices[end.Index()] = ev

	path, cost := Dijkstra(grid, start, end, worldnav.NewGameState())
	if path != nil || cost != 0 {
		t.Fatalf("expected (nil, 0) for vertices in different connectivity groups, got (%+v, %d)", path, cost)
	}
}

func TestDijkstraTeleportGatedBySkillRequirement(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 9, Y: 9, Plane: 0}

	grid.Teleports = append(grid.Teleports, worldnav.Edge{
		Destination: end,
		Cost:        3,
		Definition:  worldnav.SpellTeleportEdge{Spell: "Home Teleport"},
		Requirements: []worldnav.RequirementDefinition{
			worldnav.SkillRequirement{Skill: "MAGIC", Level: 25},
		},
	})

	without := worldnav.NewGameState()
	if path, _ := Dijkstra(grid, start, end, without); path != nil {
		t.Fatalf("expected no path without the skill requirement met, got %+v", path)
	}

	met := worldnav.NewGameState()
	met.SkillLevels["MAGIC"] = 25
	path, cost := Dijkstra(grid, start, end, met)
	if len(path) != 1 {
		t.Fatalf("expected the teleport to be usable once the skill requirement is met, got %+v", path)
	}
	if _, ok := path[0].Edge.(worldnav.SpellTeleportEdge); !ok {
		t.Fatalf("expected a SpellTeleport step, got %T", path[0].Edge)
	}
	if cost != 3 {
		t.Fatalf("expected total cost 3, got %d", cost)
	}
}

func TestDijkstraItemRequirementAnchoredMatch(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 9, Y: 9, Plane: 0}

	sv := grid.Vertex(start.Index())
	sv.SetExtraEdges(true)
	grid.Vertices[start.Index()] = sv

	grid.AddEdge(start.Index(), worldnav.Edge{
		Destination: end,
		Cost:        1,
		Definition:  worldnav.ItemTeleportEdge{Item: worldnav.MustPattern("^Ring of dueling$"), Action: worldnav.MustPattern("^Rub$")},
		Requirements: []worldnav.RequirementDefinition{
			worldnav.ItemRequirement{Item: worldnav.MustPattern("^Ring of dueling$"), Quantity: 1},
		},
	})

	missing := worldnav.NewGameState()
	if path, _ := Dijkstra(grid, start, end, missing); path != nil {
		t.Fatalf("expected no path without the required item, got %+v", path)
	}

	holding := worldnav.NewGameState()
	holding.Items["Ring of dueling"] = 1
	path, _ := Dijkstra(grid, start, end, holding)
	if len(path) != 1 {
		t.Fatalf("expected the item-gated edge usable once an anchored-matching item is present, got %+v", path)
	}
}

func TestDijkstraPanicsWithIntegrityErrorOnCorruptExtraEdgeFlag(t *testing.T) {
	grid := smallGrid(10, 10)
	sameGroup(grid, 1)

	start := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	end := worldnav.Coordinate{X: 9, Y: 9, Plane: 0}

	// The vertex claims extra edges but the multimap has no entry for
	// it: a truncated or hand-corrupted NavGrid.
	sv := grid.Vertex(start.Index())
	sv.SetExtraEdges(true)
	grid.Vertices[start.Index()] = sv

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected Dijkstra to panic on a corrupt extra-edges flag")
		}
		if _, ok := rec.(*worldnav.IntegrityError); !ok {
			t.Fatalf("expected panic value *worldnav.IntegrityError, got %T", rec)
		}
	}()
	Dijkstra(grid, start, end, worldnav.NewGameState())
}
