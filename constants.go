package worldnav

// World geometry. The world is addressed by (x, y, plane) and is carved into
// HorizontalRegions x VerticalRegions map squares of RegionSize x RegionSize
// tiles, repeated across Planes vertical floors.
const (
	HorizontalRegions = 100
	VerticalRegions   = 200
	Planes            = 4
	RegionSize        = 64

	Width  = HorizontalRegions * RegionSize
	Height = VerticalRegions * RegionSize
)

// Vertex walkable-direction bits, persisted one byte per tile.
const (
	FlagN uint8 = 0x1
	FlagE uint8 = 0x2
	FlagS uint8 = 0x4
	FlagW uint8 = 0x8

	FlagNE uint8 = 0x10
	FlagSE uint8 = 0x20
	FlagSW uint8 = 0x40
	FlagNW uint8 = 0x80
)

// Direction enumerates one of the eight directions a vertex may be walkable
// in, paired with the coordinate delta it represents.
type Direction struct {
	Flag uint8
	DX   int32
	DY   int32
}

// Directions lists the eight walk directions in the fixed order the
// generator and pathfinder both iterate in. North increases Y.
var Directions = [8]Direction{
	{Flag: FlagW, DX: -1, DY: 0},
	{Flag: FlagE, DX: 1, DY: 0},
	{Flag: FlagNW, DX: -1, DY: 1},
	{Flag: FlagN, DX: 0, DY: 1},
	{Flag: FlagNE, DX: 1, DY: 1},
	{Flag: FlagSW, DX: -1, DY: -1},
	{Flag: FlagS, DX: 0, DY: -1},
	{Flag: FlagSE, DX: 1, DY: -1},
}
