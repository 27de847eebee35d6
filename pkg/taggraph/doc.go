// Package taggraph builds a directed, multi-relation graph unifying
// filesystem structure and tag membership under one root path.
//
// Tags are declared in sidecar tag files (extension .tags): plain UTF-8
// text, one tag per line. A file named dir.tags attaches its tags to the
// containing directory; any other <stem>.tags attaches them to every
// sibling entry whose name or stem equals <stem>.
//
// # Building
//
//	g, reg, err := taggraph.Build(root, taggraph.Options{Logger: logger})
//
// [Build] runs two sequential passes over one shared [Registry]: the
// tag-file scan (strict, fail-fast) and the filesystem walk (lenient,
// per-entry errors are logged and skipped). Both passes canonicalize
// paths before any registry lookup, so the same filesystem entity always
// resolves to one handle regardless of which pass saw it first.
//
// # Graph shape
//
// Nodes are the closed variants of [Node]: files, directories, tags, and
// the RootDirectory/RootTag anchors. Edges carry a [Relation] label
// (Parent, Child, HasTag, TagAssignedTo) and edge identity includes the
// label, so a tag and its target can carry ownership and assignment
// edges simultaneously.
//
// # Consuming
//
// The finished graph is immutable. [Graph.Nodes] and [Graph.Edges]
// enumerate it, and [Reachable] restricts traversal by relation, e.g.
//
//	tags := taggraph.TagsOf(g, idx) // HasTag/Parent only
package taggraph
