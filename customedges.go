package worldnav

import "gopkg.in/yaml.v2"

// CustomEdge is one entry in the custom-edges sidecar: an Edge plus its
// source vertex and an optional mirrored reverse direction.
type CustomEdge struct {
	Source        Coordinate
	Bidirectional bool
	Edge          Edge
}

type customEdgeEnvelope struct {
	Source        Coordinate `yaml:"source"`
	Bidirectional bool       `yaml:"bidirectional"`
	edgeEnvelope  `yaml:",inline"`
}

// MarshalYAML implements yaml.Marshaler, flattening the Edge fields
// alongside source/bidirectional.
func (c CustomEdge) MarshalYAML() (any, error) {
	env, err := c.Edge.toEnvelope()
	if err != nil {
		return nil, err
	}
	return customEdgeEnvelope{Source: c.Source, Bidirectional: c.Bidirectional, edgeEnvelope: env}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *CustomEdge) UnmarshalYAML(unmarshal func(any) error) error {
	var env customEdgeEnvelope
	if err := unmarshal(&env); err != nil {
		return err
	}
	edge, err := edgeFromEnvelope(env.edgeEnvelope)
	if err != nil {
		return err
	}
	c.Source = env.Source
	c.Bidirectional = env.Bidirectional
	c.Edge = edge
	return nil
}

// CustomEdges is the top-level shape of the custom-edges YAML sidecar.
type CustomEdges struct {
	Edges     []CustomEdge `yaml:"edges"`
	Teleports []Edge       `yaml:"teleports"`
}

// LoadCustomEdges parses the sidecar document and installs its edges and
// teleports into grid. Bidirectional entries install both directions.
func LoadCustomEdges(grid *NavGrid, data []byte) error {
	var doc CustomEdges
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, custom := range doc.Edges {
		if custom.Bidirectional {
			reverse := custom.Edge
			reverse.Destination = custom.Source
			grid.AddEdge(custom.Edge.Destination.Index(), reverse)
		}
		grid.AddEdge(custom.Source.Index(), custom.Edge)
	}
	grid.Teleports = append(grid.Teleports, doc.Teleports...)
	return nil
}
