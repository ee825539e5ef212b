package worldnav

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// WriteTo serializes the NavGrid in the on-disk format: a gzip stream over
// the concatenation of the dense [flags, extra_edges_and_group] vertex
// bytes, a CBOR map from edge-source-index to its edge list, and a CBOR list
// of teleports.
func (g *NavGrid) WriteTo(w io.Writer) error {
	gz, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	buffered := bufio.NewWriter(gz)

	for _, vertex := range g.Vertices {
		if _, err := buffered.Write([]byte{vertex.Flags, vertex.ExtraEdgesAndGroup}); err != nil {
			return fmt.Errorf("worldnav: writing vertices: %w", err)
		}
	}

	enc := cbor.NewEncoder(buffered)
	if err := enc.Encode(g.Edges); err != nil {
		return fmt.Errorf("worldnav: encoding edges: %w", err)
	}
	if err := enc.Encode(g.Teleports); err != nil {
		return fmt.Errorf("worldnav: encoding teleports: %w", err)
	}

	if err := buffered.Flush(); err != nil {
		return err
	}
	return gz.Close()
}

// Load reads a NavGrid previously written by WriteTo.
func Load(r io.Reader) (*NavGrid, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("worldnav: opening gzip stream: %w", err)
	}
	defer gz.Close()

	buffered := bufio.NewReader(gz)
	grid := NewNavGrid()

	pair := make([]byte, 2)
	for i := range grid.Vertices {
		if _, err := io.ReadFull(buffered, pair); err != nil {
			return nil, fmt.Errorf("worldnav: reading vertex %d: %w", i, err)
		}
		grid.Vertices[i] = Vertex{Flags: pair[0], ExtraEdgesAndGroup: pair[1]}
	}

	dec := cbor.NewDecoder(buffered)
	if err := dec.Decode(&grid.Edges); err != nil {
		return nil, fmt.Errorf("worldnav: decoding edges: %w", err)
	}
	if err := dec.Decode(&grid.Teleports); err != nil {
		return nil, fmt.Errorf("worldnav: decoding teleports: %w", err)
	}

	return grid, nil
}
