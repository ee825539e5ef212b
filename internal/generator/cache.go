package generator

import "fmt"

// The types below are the external collaborator contracts for cache
// decoding: reading map squares, tiles, and placed objects out of a game
// client cache. Decoding the on-disk cache format itself (XTEA decryption,
// container/group indices, gzip/bzip2 entry compression) is thin glue and
// lives with whichever cache-reading library a deployment chooses to wire
// in; NavGenerator only depends on these narrow interfaces.

// Tile is a single decoded tile's movement-relevant settings.
type Tile struct {
	// Settings bit 0 marks the tile itself floor-blocked; bit 1, read from
	// the plane-1 tile at the same x/y whatever the plane being processed,
	// means "this blockage actually belongs to the plane below" (a
	// bridge/roof convention from the source cache format).
	Settings uint8
}

// TileArray exposes the decoded tiles of one map square, indexed exactly
// like the source cache's (plane, x, y) tuple.
type TileArray interface {
	At(plane, x, y uint8) Tile
}

// Location is one placed object within a map square, in cache-local
// coordinates (i, j identify the map square; x, y are tile-local).
type Location struct {
	ID       uint32
	I, J     uint8
	X, Y     uint8
	Plane    uint8
	Type     uint8
	Rotation uint8
}

// MapSquare exposes one 64x64 region's tiles and placed locations.
type MapSquare interface {
	I() uint8
	J() uint8
	Tiles() (TileArray, error)
	Locations() ([]Location, error)
}

// LocationConfig is the metadata describing a location type: its footprint,
// collision behavior, and available menu actions.
type LocationConfig struct {
	Name             string
	Actions          []string
	InteractType     *uint8
	BreakLineOfSight *bool
	DimX             *uint8
	DimY             *uint8
}

func (c LocationConfig) interactType() uint8 {
	if c.InteractType == nil {
		return 2
	}
	return *c.InteractType
}

func (c LocationConfig) breakLineOfSight() bool {
	if c.BreakLineOfSight == nil {
		return true
	}
	return *c.BreakLineOfSight
}

func (c LocationConfig) dimX() uint8 {
	if c.DimX == nil {
		return 1
	}
	return *c.DimX
}

func (c LocationConfig) dimY() uint8 {
	if c.DimY == nil {
		return 1
	}
	return *c.DimY
}

func hasAction(actions []string, want string) bool {
	for _, action := range actions {
		if action == want {
			return true
		}
	}
	return false
}

// CacheSource is the entry point a deployment's cache-reading library
// implements: enumerate every map square worth processing and the
// location configuration table referenced by their placed objects.
// NavGenerator and cmd/generator depend only on this interface, never on
// a concrete cache format.
type CacheSource interface {
	MapSquares() ([]MapSquare, error)
	LocationConfigs() (map[uint32]LocationConfig, error)
}

// OpenCacheSource opens a cache rooted at cachePath, decrypting
// XTEA-protected groups with the keys at xteasPath. No concrete cache
// format is bundled here; a deployment wires in a library against
// CacheSource and replaces this constructor.
func OpenCacheSource(cachePath, xteasPath string) (CacheSource, error) {
	return nil, fmt.Errorf("generator: no cache source implementation configured for %q", cachePath)
}
