// Package graphio provides the JSON serialization boundary for tag
// graphs: a node-link wire format carrying node variants, payloads, and
// relation-labeled edges.
//
// Common operations:
//
//	graphio.WriteGraphFile(g, "graph.json") // Graph → file
//	g, _ := graphio.ReadGraphFile("graph.json")
//	data, _ := graphio.MarshalGraph(g) // Graph → []byte
package graphio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// MarshalGraph converts a tag graph to indented JSON bytes.
func MarshalGraph(g *taggraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a tag graph as JSON to w.
func WriteGraph(g *taggraph.Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a tag graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *taggraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*taggraph.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return ToGraph(data)
}

// ReadGraphFile reads a JSON file and returns the decoded tag graph.
func ReadGraphFile(path string) (*taggraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

func writeGraphTo(g *taggraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}
