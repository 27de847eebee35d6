// Package pkg provides the core libraries for tagmesh.
//
// # Overview
//
// Tagmesh turns a directory tree annotated with .tags files into a
// single graph of files, directories, and tags. The pkg directory is
// organized into five areas:
//
//  1. [taggraph] - Graph construction (node registry, tag scanner, tree walker)
//  2. [graphio] - JSON serialization of built graphs
//  3. [render] - Graphviz DOT emission and SVG/PNG rendering
//  4. [cache] - Artifact cache backends (file, Redis, null)
//  5. [errors] - Structured errors with stable codes
//
// # Data Flow
//
// The typical flow through tagmesh:
//
//	directory tree with .tags files
//	         ↓
//	    [taggraph] package (scan tags, walk tree, dedupe nodes)
//	         ↓
//	    [graphio] package (graph.json)
//	         ↓
//	    [render] package (DOT → SVG/PNG)
//
// # Quick Start
//
// Build a graph and look up the tags of a file:
//
//	import "github.com/tagmesh/tagmesh/pkg/taggraph"
//
//	g, _, err := taggraph.Build(".", taggraph.Options{})
//	if err != nil {
//	    return err
//	}
//	if idx, ok := taggraph.LookupPath(g, "photos/img.png"); ok {
//	    for _, tag := range taggraph.TagsOf(g, idx) {
//	        fmt.Println(tag.Tag)
//	    }
//	}
//
// [taggraph]: github.com/tagmesh/tagmesh/pkg/taggraph
// [graphio]: github.com/tagmesh/tagmesh/pkg/graphio
// [render]: github.com/tagmesh/tagmesh/pkg/render
// [cache]: github.com/tagmesh/tagmesh/pkg/cache
// [errors]: github.com/tagmesh/tagmesh/pkg/errors
package pkg
