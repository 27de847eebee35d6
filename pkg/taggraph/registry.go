package taggraph

// Registry is the deduplicating store mapping node values to stable
// handles in a backing [Graph]. The mapping is a bijection at all times:
// no two registrations of value-equal nodes ever coexist as distinct
// handles, and every handle resolves back to exactly one value.
//
// Registry methods may add nodes and edges to the backing graph; nothing
// is ever removed.
type Registry struct {
	g *Graph
}

// NewRegistry creates a registry over the given graph.
// The graph's existing nodes remain registered; a nil graph gets a fresh
// empty one.
func NewRegistry(g *Graph) *Registry {
	if g == nil {
		g = NewGraph()
	}
	return &Registry{g: g}
}

// Graph returns the backing graph.
func (r *Registry) Graph() *Graph { return r.g }

// GetOrCreate returns the handle for a value-equal registered node,
// inserting the node first if it was not yet known. The value is consumed
// into the registry.
func (r *Registry) GetOrCreate(n Node) NodeIndex {
	if idx, ok := r.g.index[n]; ok {
		return idx
	}
	return r.g.addNode(n)
}

// GetOrCreateRef is the borrowing form of [Registry.GetOrCreate]: the
// caller keeps its value and only a copy is registered. Dedup behavior is
// identical to the consuming form.
func (r *Registry) GetOrCreateRef(n *Node) NodeIndex {
	return r.GetOrCreate(*n)
}

// Connect resolves or creates both endpoint nodes and inserts a
// rel-labeled edge from a to b. Connecting the same triple twice is a
// no-op; the same ordered pair may carry any number of differently
// labeled edges.
func (r *Registry) Connect(a, b Node, rel Relation) {
	ai := r.GetOrCreate(a)
	bi := r.GetOrCreate(b)
	r.g.updateEdge(ai, bi, rel)
}

// ConnectIndex inserts a rel-labeled edge between two already resolved
// handles.
func (r *Registry) ConnectIndex(a, b NodeIndex, rel Relation) {
	r.g.updateEdge(a, b, rel)
}
