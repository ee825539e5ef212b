package generator

import worldnav "worldnav"

// addWall sets the directional movement (and, if solid, line-of-sight)
// flags on both sides of a wall segment. The table is keyed by the
// location's shape type and rotation:
//
//   - type 0: a thin straight wall blocking one cardinal edge.
//   - types 1 and 3: diagonal corner walls blocking one diagonal pair.
//   - type 2: a wall corner blocking two cardinal directions on c plus the
//     single opposing cardinal on each of the two adjacent neighbors.
func (g *NavGenerator) addWall(c worldnav.Coordinate, locType, rotation uint8, solid bool) {
	var solidMask uint32
	if solid {
		solidMask = ^uint32(0)
	}

	switch locType {
	case 0:
		switch rotation {
		case 0:
			g.setFlag(c, blockMovementWest|(blockLineOfSightWest&solidMask))
			g.setFlag(c.Derive(-1, 0, 0), blockMovementEast|(blockLineOfSightEast&solidMask))
		case 1:
			g.setFlag(c, blockMovementNorth|(blockLineOfSightNorth&solidMask))
			g.setFlag(c.Derive(0, 1, 0), blockMovementSouth|(blockLineOfSightSouth&solidMask))
		case 2:
			g.setFlag(c, blockMovementEast|(blockLineOfSightEast&solidMask))
			g.setFlag(c.Derive(1, 0, 0), blockMovementWest|(blockLineOfSightWest&solidMask))
		case 3:
			g.setFlag(c, blockMovementSouth|(blockLineOfSightSouth&solidMask))
			g.setFlag(c.Derive(0, -1, 0), blockMovementNorth|(blockLineOfSightNorth&solidMask))
		}
	case 1, 3:
		switch rotation {
		case 0:
			g.setFlag(c, blockMovementNorthWest|(blockLineOfSightNorthWest&solidMask))
			g.setFlag(c.Derive(-1, 1, 0), blockMovementSouthEast|(blockLineOfSightSouthEast&solidMask))
		case 1:
			g.setFlag(c, blockMovementNorthEast|(blockLineOfSightNorthEast&solidMask))
			g.setFlag(c.Derive(1, 1, 0), blockMovementSouthWest|(blockLineOfSightSouthWest&solidMask))
		case 2:
			g.setFlag(c, blockMovementSouthEast|(blockLineOfSightSouthEast&solidMask))
			g.setFlag(c.Derive(1, -1, 0), blockMovementNorthWest|(blockLineOfSightNorthWest&solidMask))
		case 3:
			g.setFlag(c, blockMovementSouthWest|(blockLineOfSightSouthWest&solidMask))
			g.setFlag(c.Derive(-1, -1, 0), blockMovementNorthEast|(blockLineOfSightNorthEast&solidMask))
		}
	case 2:
		switch rotation {
		case 0:
			g.setFlag(c, blockMovementNorth|blockMovementWest|((blockLineOfSightNorth|blockLineOfSightWest)&solidMask))
			g.setFlag(c.Derive(-1, 0, 0), blockMovementEast|(blockLineOfSightEast&solidMask))
			g.setFlag(c.Derive(0, 1, 0), blockMovementSouth|(blockLineOfSightSouth&solidMask))
		case 1:
			g.setFlag(c, blockMovementNorth|blockMovementEast|((blockLineOfSightNorth|blockLineOfSightEast)&solidMask))
			g.setFlag(c.Derive(0, 1, 0), blockMovementSouth|(blockLineOfSightSouth&solidMask))
			g.setFlag(c.Derive(1, 0, 0), blockMovementWest|(blockLineOfSightWest&solidMask))
		case 2:
			g.setFlag(c, blockMovementSouth|blockMovementEast|((blockLineOfSightSouth|blockLineOfSightEast)&solidMask))
			g.setFlag(c.Derive(1, 0, 0), blockMovementWest|(blockLineOfSightWest&solidMask))
			g.setFlag(c.Derive(0, -1, 0), blockMovementNorth|(blockLineOfSightNorth&solidMask))
		case 3:
			g.setFlag(c, blockMovementSouth|blockMovementWest|((blockLineOfSightSouth|blockLineOfSightWest)&solidMask))
			g.setFlag(c.Derive(0, -1, 0), blockMovementNorth|(blockLineOfSightNorth&solidMask))
			g.setFlag(c.Derive(-1, 0, 0), blockMovementEast|(blockLineOfSightEast&solidMask))
		}
	}
}
