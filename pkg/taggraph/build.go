package taggraph

import (
	"github.com/charmbracelet/log"
)

// Options configures a graph build.
type Options struct {
	// Logger receives scanner warnings and walker entry errors.
	// Defaults to log.Default() when nil.
	Logger *log.Logger
}

// Build constructs the tag graph for the tree rooted at root.
//
// It runs the tag-file scan to completion, then the filesystem walk to
// completion, both against one shared registry, so a path discovered by
// both passes resolves to a single node. The two passes are strictly
// sequential and single-threaded; each tag file is fully read and closed
// before the next is opened.
//
// On success the returned graph is complete and immutable, and the
// registry maps node values to handles and back. On any scanner failure
// (path canonicalization, tag-file read) the whole build fails and no
// partial graph is returned. Walker entry failures are logged through
// Options.Logger and do not fail the build.
func Build(root string, opts Options) (*Graph, *Registry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := NewGraph()
	reg := NewRegistry(g)

	s := &scanner{reg: reg, logger: logger}
	if err := s.scan(root); err != nil {
		return nil, nil, err
	}

	w := &walker{reg: reg, logger: logger}
	w.walk(root)

	return g, reg, nil
}
