package generator

import (
	"strings"

	worldnav "worldnav"
)

// Finalize runs the generator's postprocessing pass over a fully
// flag-transformed NavGrid: marking every vertex that owns at least one
// extra edge, computing connectivity groups, and normalizing skill-name
// casing across every requirement so the pathfinder's case-insensitive
// comparison has nothing left to do at query time.
func Finalize(grid *worldnav.NavGrid) {
	for index := range grid.Edges {
		grid.Vertices[index].SetExtraEdges(true)
	}

	CreateGroups(grid)

	for index := range grid.Edges {
		for i := range grid.Edges[index] {
			normalizeSkillNames(grid.Edges[index][i].Requirements)
		}
	}
	for i := range grid.Teleports {
		normalizeSkillNames(grid.Teleports[i].Requirements)
	}
}

func normalizeSkillNames(reqs []worldnav.RequirementDefinition) {
	for i, req := range reqs {
		if skill, ok := req.(worldnav.SkillRequirement); ok {
			skill.Skill = strings.ToUpper(skill.Skill)
			reqs[i] = skill
		}
	}
}
