package taggraph

import "slices"

// EdgeFilter restricts a traversal to a subset of edges.
type EdgeFilter func(Edge) bool

// FollowRelations returns a filter admitting only the given relations.
func FollowRelations(rels ...Relation) EdgeFilter {
	return func(e Edge) bool { return slices.Contains(rels, e.Rel) }
}

// Reachable returns the handles reachable from start by following
// outgoing edges admitted by the filter, in breadth-first discovery
// order. The start node itself is included as the first element. A nil
// filter follows every edge.
func Reachable(g *Graph, start NodeIndex, filter EdgeFilter) []NodeIndex {
	if _, ok := g.Node(start); !ok {
		return nil
	}

	visited := map[NodeIndex]struct{}{start: {}}
	order := []NodeIndex{start}
	queue := []NodeIndex{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.Out(current) {
			if filter != nil && !filter(e) {
				continue
			}
			if _, seen := visited[e.To]; seen {
				continue
			}
			visited[e.To] = struct{}{}
			order = append(order, e.To)
			queue = append(queue, e.To)
		}
	}
	return order
}

// TagsOf collects every tag that applies to the entity at start: its own
// tags plus tags inherited from ancestor directories. The traversal
// follows only Parent and HasTag edges, so assignment edges and the
// directory fan-out never leak into the result. Tags are returned in
// discovery order.
func TagsOf(g *Graph, start NodeIndex) []Node {
	var tags []Node
	for _, idx := range Reachable(g, start, FollowRelations(RelParent, RelHasTag)) {
		if n, ok := g.Node(idx); ok && n.Kind == KindTag {
			tags = append(tags, n)
		}
	}
	return tags
}

// AssignedTo returns the entities a tag has been directly assigned to,
// following TagAssignedTo edges only.
func AssignedTo(g *Graph, tag NodeIndex) []Node {
	var entities []Node
	for _, e := range g.OutRel(tag, RelTagAssignedTo) {
		if n, ok := g.Node(e.To); ok && n.IsEntity() {
			entities = append(entities, n)
		}
	}
	return entities
}

// LookupPath finds the entity node for a filesystem path, trying the
// file kind first and falling back to the directory kind. The path is
// canonicalized the same way the builder canonicalizes it, so relative
// paths and symlinks resolve to the stored node.
func LookupPath(g *Graph, path string) (NodeIndex, bool) {
	resolved, err := canonicalize(path)
	if err != nil {
		resolved = path
	}
	if idx, ok := g.Lookup(FileNode(resolved)); ok {
		return idx, true
	}
	return g.Lookup(DirectoryNode(resolved))
}

// AllTags returns every tag owned by the RootTag anchor, in discovery
// order. The result is empty when no tag files were found.
func AllTags(g *Graph) []Node {
	rootTag, ok := g.Lookup(RootTag())
	if !ok {
		return nil
	}
	var tags []Node
	for _, e := range g.OutRel(rootTag, RelHasTag) {
		if n, ok := g.Node(e.To); ok && n.Kind == KindTag {
			tags = append(tags, n)
		}
	}
	return tags
}
