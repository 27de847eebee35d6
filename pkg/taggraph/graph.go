package taggraph

import "slices"

// NodeIndex is a stable handle to a node inside a [Graph].
// Handles are dense, start at zero, and are never reused or invalidated
// within one build.
type NodeIndex int

// Edge is a directed, relation-labeled edge between two node handles.
// Edge identity is the full (From, To, Rel) triple: distinct relations
// between the same ordered pair of nodes are distinct edges and coexist
// in the graph.
type Edge struct {
	From NodeIndex
	To   NodeIndex
	Rel  Relation
}

// Graph is a directed multigraph over deduplicated [Node] values.
// Multiple edges between the same ordered node pair are permitted as long
// as their relations differ; inserting the same (from, to, relation)
// triple twice is a no-op.
//
// Graphs are built through a [Registry] and are treated as immutable once
// [Build] returns. Graph is not safe for concurrent mutation; concurrent
// reads of a finished graph are safe.
type Graph struct {
	nodes    []Node
	index    map[Node]NodeIndex
	edges    []Edge
	edgeSet  map[Edge]struct{}
	outgoing map[NodeIndex][]int // node -> positions in edges
	incoming map[NodeIndex][]int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:    make(map[Node]NodeIndex),
		edgeSet:  make(map[Edge]struct{}),
		outgoing: make(map[NodeIndex][]int),
		incoming: make(map[NodeIndex][]int),
	}
}

// addNode inserts a node that is known not to be registered yet.
// Callers go through [Registry.GetOrCreate], which upholds the
// value-to-handle bijection.
func (g *Graph) addNode(n Node) NodeIndex {
	idx := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.index[n] = idx
	return idx
}

// updateEdge inserts the (from, to, rel) edge if it is not already present.
func (g *Graph) updateEdge(from, to NodeIndex, rel Relation) {
	e := Edge{From: from, To: to, Rel: rel}
	if _, exists := g.edgeSet[e]; exists {
		return
	}
	pos := len(g.edges)
	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	g.outgoing[from] = append(g.outgoing[from], pos)
	g.incoming[to] = append(g.incoming[to], pos)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node value for a handle and true, or a zero node and
// false if the handle is out of range.
func (g *Graph) Node(idx NodeIndex) (Node, bool) {
	if idx < 0 || int(idx) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[idx], true
}

// Lookup resolves a node value back to its handle.
func (g *Graph) Lookup(n Node) (NodeIndex, bool) {
	idx, ok := g.index[n]
	return idx, ok
}

// Nodes returns all node values in handle order.
// The returned slice is a copy.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
// The returned slice is a copy.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Out returns the outgoing edges of a node in insertion order.
func (g *Graph) Out(idx NodeIndex) []Edge {
	return g.edgesAt(g.outgoing[idx])
}

// In returns the incoming edges of a node in insertion order.
func (g *Graph) In(idx NodeIndex) []Edge {
	return g.edgesAt(g.incoming[idx])
}

// OutRel returns the outgoing edges of a node restricted to one relation.
func (g *Graph) OutRel(idx NodeIndex, rel Relation) []Edge {
	var result []Edge
	for _, pos := range g.outgoing[idx] {
		if g.edges[pos].Rel == rel {
			result = append(result, g.edges[pos])
		}
	}
	return result
}

// HasEdge reports whether the exact (from, to, rel) edge exists.
func (g *Graph) HasEdge(from, to NodeIndex, rel Relation) bool {
	_, ok := g.edgeSet[Edge{From: from, To: to, Rel: rel}]
	return ok
}

func (g *Graph) edgesAt(positions []int) []Edge {
	if len(positions) == 0 {
		return nil
	}
	result := make([]Edge, len(positions))
	for i, pos := range positions {
		result[i] = g.edges[pos]
	}
	return result
}
