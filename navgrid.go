package worldnav

import "github.com/fxamacker/cbor/v2"

// Vertex is the persisted per-tile navigation record: two bytes, a
// walkable-direction bitmask and a packed extra-edges flag plus
// connectivity group.
type Vertex struct {
	Flags              uint8
	ExtraEdgesAndGroup uint8
}

// HasExtraEdges reports whether the vertex has at least one entry in the
// NavGrid's edge multimap.
func (v Vertex) HasExtraEdges() bool {
	return v.ExtraEdgesAndGroup&1 == 1
}

// SetExtraEdges flips the has-extra-edges bit.
func (v *Vertex) SetExtraEdges(has bool) {
	if has {
		v.ExtraEdgesAndGroup |= 1
	} else {
		v.ExtraEdgesAndGroup &^= 1
	}
}

// Group returns the connectivity group id, 0..127. A value of 1 means "not
// in a top-126 surface component"; 0 is unreachable (Flags == 0).
func (v Vertex) Group() uint8 {
	return v.ExtraEdgesAndGroup >> 1
}

// SetGroup stores the connectivity group id.
func (v *Vertex) SetGroup(group uint8) {
	v.ExtraEdgesAndGroup = group<<1 | v.ExtraEdgesAndGroup&1
}

// Edge is a single traversal out of some source vertex (or, for teleports,
// from anywhere) into Destination, gated by Requirements.
type Edge struct {
	Destination  Coordinate
	Cost         uint32
	Definition   EdgeDefinition
	Requirements []RequirementDefinition
}

// Usable reports whether every requirement on the edge is met by state.
func (e Edge) Usable(state GameState) bool {
	return RequirementsMet(e.Requirements, state)
}

type edgeEnvelope struct {
	Destination  Coordinate             `cbor:"destination" yaml:"destination"`
	Cost         uint32                 `cbor:"cost" yaml:"cost"`
	Definition   edgeDefinitionEnvelope `cbor:"definition" yaml:"definition"`
	Requirements []requirementEnvelope  `cbor:"requirements,omitempty" yaml:"requirements,omitempty"`
}

func (e Edge) toEnvelope() (edgeEnvelope, error) {
	defEnv, err := encodeEdgeDefinition(e.Definition)
	if err != nil {
		return edgeEnvelope{}, err
	}
	cost := e.Cost
	if cost == 0 {
		cost = 1
	}
	env := edgeEnvelope{Destination: e.Destination, Cost: cost, Definition: defEnv}
	for _, req := range e.Requirements {
		reqEnv, err := encodeRequirement(req)
		if err != nil {
			return edgeEnvelope{}, err
		}
		env.Requirements = append(env.Requirements, reqEnv)
	}
	return env, nil
}

func edgeFromEnvelope(env edgeEnvelope) (Edge, error) {
	def, err := decodeEdgeDefinition(env.Definition)
	if err != nil {
		return Edge{}, err
	}
	cost := env.Cost
	if cost == 0 {
		cost = 1
	}
	edge := Edge{Destination: env.Destination, Cost: cost, Definition: def}
	for _, reqEnv := range env.Requirements {
		req, err := decodeRequirement(reqEnv)
		if err != nil {
			return Edge{}, err
		}
		edge.Requirements = append(edge.Requirements, req)
	}
	return edge, nil
}

// MarshalCBOR implements cbor.Marshaler.
func (e Edge) MarshalCBOR() ([]byte, error) {
	env, err := e.toEnvelope()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(env)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (e *Edge) UnmarshalCBOR(data []byte) error {
	var env edgeEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return err
	}
	decoded, err := edgeFromEnvelope(env)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (e Edge) MarshalYAML() (any, error) {
	return e.toEnvelope()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Edge) UnmarshalYAML(unmarshal func(any) error) error {
	var env edgeEnvelope
	if err := unmarshal(&env); err != nil {
		return err
	}
	decoded, err := edgeFromEnvelope(env)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// NavGrid is the complete, immutable-after-load navigation structure served
// by the pathfinder: a dense vertex array plus the sparse extra-edge
// multimap and the global teleport list.
type NavGrid struct {
	Vertices  []Vertex
	Edges     map[uint32][]Edge
	Teleports []Edge
}

// NewNavGrid allocates an empty, fully-blocked NavGrid sized for the whole
// world.
func NewNavGrid() *NavGrid {
	return &NavGrid{
		Vertices: make([]Vertex, uint64(Width)*uint64(Height)*uint64(Planes)),
		Edges:    make(map[uint32][]Edge),
	}
}

// AddEdge inserts an edge keyed by its source vertex index.
func (g *NavGrid) AddEdge(source uint32, edge Edge) {
	g.Edges[source] = append(g.Edges[source], edge)
}

// EdgesFrom returns the extra edges leaving the given vertex index.
func (g *NavGrid) EdgesFrom(index uint32) []Edge {
	return g.Edges[index]
}

// Vertex returns the vertex at index.
func (g *NavGrid) Vertex(index uint32) Vertex {
	return g.Vertices[index]
}
