package generator

import (
	"testing"

	worldnav "worldnav"
)

func TestFinalizeMarksExtraEdgesAndNormalizesSkillCasing(t *testing.T) {
	grid := seedGrid(10, 10)
	source := worldnav.Coordinate{X: 1, Y: 1, Plane: 0}
	grid.AddEdge(source.Index(), worldnav.Edge{
		Destination: worldnav.Coordinate{X: 2, Y: 1, Plane: 0},
		Cost:        1,
		Definition:  worldnav.DoorEdge{ID: 1, Position: source, Action: worldnav.MustPattern("^Open$")},
		Requirements: []worldnav.RequirementDefinition{
			worldnav.SkillRequirement{Skill: "magic", Level: 50},
		},
	})
	grid.Teleports = append(grid.Teleports, worldnav.Edge{
		Destination: worldnav.Coordinate{X: 3, Y: 1, Plane: 0},
		Cost:        1,
		Definition:  worldnav.SpellTeleportEdge{Spell: "Home Teleport"},
		Requirements: []worldnav.RequirementDefinition{
			worldnav.SkillRequirement{Skill: "magic", Level: 25},
		},
	})

	Finalize(grid)

	if !grid.Vertex(source.Index()).HasExtraEdges() {
		t.Fatal("expected the edge source vertex to have its extra-edges bit set")
	}

	edgeReq := grid.Edges[source.Index()][0].Requirements[0].(worldnav.SkillRequirement)
	if edgeReq.Skill != "MAGIC" {
		t.Fatalf("expected edge requirement skill name normalized to MAGIC, got %q", edgeReq.Skill)
	}

	teleportReq := grid.Teleports[0].Requirements[0].(worldnav.SkillRequirement)
	if teleportReq.Skill != "MAGIC" {
		t.Fatalf("expected teleport requirement skill name normalized to MAGIC, got %q", teleportReq.Skill)
	}
}
