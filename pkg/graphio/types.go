package graphio

import (
	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// Graph is the canonical serialization format for tag graphs.
// Used for files, API responses, and render-cache keying.
//
// The format is designed for round-trip fidelity: export then re-import
// produces an isomorphic graph with identical handles.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one serialized graph node. ID is the node's stable handle from
// the build; Kind discriminates the variant and selects which payload
// field is meaningful.
type Node struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Path  string `json:"path,omitempty"`  // file and directory nodes
	Tag   string `json:"tag,omitempty"`   // tag nodes
	Label string `json:"label,omitempty"` // display label, derived
}

// Edge is one serialized relation-labeled edge.
type Edge struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Rel  string `json:"rel"`
}

// FromGraph converts a built tag graph to its serialization format.
// Nodes appear in handle order and edges in insertion order, so output
// is deterministic for a given build.
func FromGraph(g *taggraph.Graph) Graph {
	out := Graph{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for i, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{
			ID:    i,
			Kind:  n.Kind.String(),
			Path:  n.Path,
			Tag:   n.Tag,
			Label: n.Label(),
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{
			From: int(e.From),
			To:   int(e.To),
			Rel:  e.Rel.String(),
		})
	}
	return out
}

// ToGraph reconstructs a tag graph from its serialized form.
// Returns an INVALID_FORMAT error for unknown kinds or relations,
// duplicate IDs or node values, and edges referencing missing IDs.
func ToGraph(gj Graph) (*taggraph.Graph, error) {
	reg := taggraph.NewRegistry(nil)
	g := reg.Graph()

	handles := make(map[int]taggraph.NodeIndex, len(gj.Nodes))
	for _, nj := range gj.Nodes {
		n, err := nodeValue(nj)
		if err != nil {
			return nil, err
		}
		if _, dup := handles[nj.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node ID %d", nj.ID)
		}
		before := g.NodeCount()
		idx := reg.GetOrCreate(n)
		if g.NodeCount() == before {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node value %v", n)
		}
		handles[nj.ID] = idx
	}

	for _, ej := range gj.Edges {
		from, okF := handles[ej.From]
		to, okT := handles[ej.To]
		if !okF || !okT {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "edge %d→%d references unknown node", ej.From, ej.To)
		}
		rel, ok := taggraph.ParseRelation(ej.Rel)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown relation %q", ej.Rel)
		}
		reg.ConnectIndex(from, to, rel)
	}

	return g, nil
}

// nodeValue converts a serialized node back to its value form.
func nodeValue(nj Node) (taggraph.Node, error) {
	switch nj.Kind {
	case taggraph.KindFile.String():
		return taggraph.FileNode(nj.Path), nil
	case taggraph.KindDirectory.String():
		return taggraph.DirectoryNode(nj.Path), nil
	case taggraph.KindRootDirectory.String():
		return taggraph.RootDirectory(), nil
	case taggraph.KindRootTag.String():
		return taggraph.RootTag(), nil
	case taggraph.KindTag.String():
		return taggraph.TagNode(nj.Tag), nil
	default:
		return taggraph.Node{}, errors.New(errors.ErrCodeInvalidFormat, "unknown node kind %q", nj.Kind)
	}
}
