package generator

import (
	"fmt"

	worldnav "worldnav"
)

// GeneratorConfig controls id-level overrides for the generator's
// special-location handling, loaded from YAML by the caller.
type GeneratorConfig struct {
	ExcludedLocationIDs map[uint32]struct{} `yaml:"excluded_location_ids"`
}

func (c GeneratorConfig) excluded(id uint32) bool {
	_, ok := c.ExcludedLocationIDs[id]
	return ok
}

// NavGenerator accumulates 32-bit collision flags per tile while walking
// the cache, then transforms them into the NavGrid's persisted 8-bit
// walkable-direction flags.
type NavGenerator struct {
	collisionFlags *worldnav.RegionCache[uint32]
	grid           *worldnav.NavGrid
	config         GeneratorConfig
}

// NewNavGenerator constructs an empty generator for the given configuration.
func NewNavGenerator(config GeneratorConfig) *NavGenerator {
	if config.ExcludedLocationIDs == nil {
		config.ExcludedLocationIDs = make(map[uint32]struct{})
	}
	return &NavGenerator{
		collisionFlags: worldnav.NewRegionCache[uint32](0),
		grid:           worldnav.NewNavGrid(),
		config:         config,
	}
}

// Grid returns the NavGrid built so far.
func (g *NavGenerator) Grid() *worldnav.NavGrid { return g.grid }

// ProcessMapSquare walks one decoded map square's tiles and locations,
// accumulating collision flags and inserting door edges.
func (g *NavGenerator) ProcessMapSquare(sq MapSquare, locConfigs map[uint32]LocationConfig) error {
	tiles, err := sq.Tiles()
	if err != nil {
		return nil
	}
	g.processTiles(sq, tiles)

	locations, err := sq.Locations()
	if err != nil {
		return nil
	}
	return g.processLocations(locations, locConfigs, tiles)
}

func (g *NavGenerator) processTiles(sq MapSquare, tiles TileArray) {
	for plane := uint8(0); plane < worldnav.Planes; plane++ {
		for x := uint8(0); x < worldnav.RegionSize; x++ {
			for y := uint8(0); y < worldnav.RegionSize; y++ {
				tile := tiles.At(plane, x, y)
				if tile.Settings&1 != 1 {
					continue
				}
				c := worldnav.FromMapSquare(sq.I(), sq.J(), x, y, plane)
				if tiles.At(1, x, y).Settings&2 == 2 {
					if c.Plane == 0 {
						continue
					}
					c = c.Derive(0, 0, -1)
				}
				g.setFlag(c, blockMovementFloor)
			}
		}
	}
}

func (g *NavGenerator) processLocations(locations []Location, configs map[uint32]LocationConfig, tiles TileArray) error {
	for _, loc := range locations {
		config, ok := configs[loc.ID]
		if !ok {
			return &worldnav.DataCorruptionError{Detail: fmt.Sprintf("missing LocationConfig %d", loc.ID)}
		}

		c := worldnav.FromMapSquare(loc.I, loc.J, loc.X, loc.Y, loc.Plane)
		if tiles.At(1, loc.X, loc.Y).Settings&2 == 2 {
			if c.Plane == 0 {
				continue
			}
			c = c.Derive(0, 0, -1)
		}

		switch {
		case loc.Type <= 3:
			if config.interactType() != 0 {
				g.addWall(c, loc.Type, loc.Rotation, config.breakLineOfSight())
			}
		case loc.Type == 22:
			if config.interactType() == 1 {
				g.setFlag(c, blockMovementFloorDecoration)
			}
		case loc.Type >= 9:
			if config.interactType() != 0 {
				g.addLocation(c, config.dimX(), config.dimY(), loc.Rotation, config.breakLineOfSight())
			}
		}

		g.processSpecialLocation(loc, c, config)
	}
	return nil
}

func (g *NavGenerator) processSpecialLocation(loc Location, adjustedC worldnav.Coordinate, config LocationConfig) {
	if g.config.excluded(loc.ID) {
		return
	}
	if loc.Type > 3 {
		return
	}
	switch config.Name {
	case "Door", "Gate", "Large door":
		if hasAction(config.Actions, "Open") {
			g.addDoor(adjustedC, loc.ID, loc.Rotation)
		}
	}
}

// addLocation blocks the w x h rectangle anchored at c for a footprint
// object; width and height swap for rotations 1 and 3.
func (g *NavGenerator) addLocation(c worldnav.Coordinate, width, height, rotation uint8, solid bool) {
	if rotation == 1 || rotation == 3 {
		width, height = height, width
	}
	flag := blockMovementObject
	if solid {
		flag |= blockLineOfSightFull
	}
	for ix := int16(0); ix < int16(width); ix++ {
		for iy := int16(0); iy < int16(height); iy++ {
			g.setFlag(c.Derive(ix, iy, 0), flag)
		}
	}
}

// addDoor inserts a bidirectional door edge across the wall at c; the
// opposite side is determined by rotation (0=west, 1=north, 2=east,
// 3=south neighbor of the wall anchor).
func (g *NavGenerator) addDoor(c worldnav.Coordinate, id uint32, rotation uint8) {
	var dx, dy int16
	switch rotation {
	case 0:
		dx, dy = -1, 0
	case 1:
		dx, dy = 0, 1
	case 2:
		dx, dy = 1, 0
	case 3:
		dx, dy = 0, -1
	}
	c2 := c.Derive(dx, dy, 0)
	action := worldnav.MustPattern("^Open$")

	g.grid.AddEdge(c.Index(), worldnav.Edge{
		Destination: c2,
		Cost:        2,
		Definition:  worldnav.DoorEdge{ID: id, Position: c, Action: action},
	})
	g.grid.AddEdge(c2.Index(), worldnav.Edge{
		Destination: c,
		Cost:        2,
		Definition:  worldnav.DoorEdge{ID: id, Position: c, Action: action},
	})
}

func (g *NavGenerator) getFlag(c worldnav.Coordinate) uint32 {
	if !c.Validate() {
		return ^uint32(0)
	}
	flag, ok := g.collisionFlags.Get(c.Index())
	if !ok {
		return ^uint32(0)
	}
	return flag
}

func (g *NavGenerator) setFlag(c worldnav.Coordinate, flag uint32) {
	*g.collisionFlags.GetMut(c.Index()) |= flag
}

// canTravelInDirection implements the squeeze-through-safe walkability test
// for a single direction out of c.
func (g *NavGenerator) canTravelInDirection(c worldnav.Coordinate, dx, dy int16) bool {
	dest := c.Derive(dx, dy, 0)
	if !dest.Validate() {
		return false
	}

	xFlags := blockMovementFull
	yFlags := blockMovementFull
	xyFlags := blockMovementFull

	switch {
	case dx < 0:
		xFlags |= blockMovementEast
	case dx > 0:
		xFlags |= blockMovementWest
	}
	switch {
	case dy < 0:
		yFlags |= blockMovementNorth
	case dy > 0:
		yFlags |= blockMovementSouth
	}
	switch {
	case dx < 0 && dy < 0:
		xyFlags |= blockMovementNorthEast
	case dx < 0 && dy > 0:
		xyFlags |= blockMovementSouthEast
	case dx > 0 && dy < 0:
		xyFlags |= blockMovementNorthWest
	case dx > 0 && dy > 0:
		xyFlags |= blockMovementSouthWest
	}

	destFlags := g.getFlag(dest)
	if dx != 0 && destFlags&xFlags != 0 {
		return false
	}
	if dy != 0 && destFlags&yFlags != 0 {
		return false
	}
	if dx != 0 && dy != 0 {
		if destFlags&xyFlags != 0 {
			return false
		}
		if g.getFlag(dest.Derive(0, -dy, 0))&xFlags != 0 {
			return false
		}
		if g.getFlag(dest.Derive(-dx, 0, 0))&yFlags != 0 {
			return false
		}
	}
	return true
}

// TransformFlags derives the persisted 8-bit walkable-direction flags for
// every vertex from the accumulated 32-bit collision flags.
func (g *NavGenerator) TransformFlags() {
	for index := range g.grid.Vertices {
		c := worldnav.FromIndex(uint32(index))
		if g.getFlag(c)&blockMovementFull != 0 {
			continue
		}
		var flags uint8
		for _, d := range worldnav.Directions {
			if g.canTravelInDirection(c, int16(d.DX), int16(d.DY)) {
				flags |= d.Flag
			}
		}
		g.grid.Vertices[index].Flags = flags
	}
}
