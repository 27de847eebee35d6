package taggraph

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// walker implements the filesystem pass. Unlike the scanner it is
// lenient: an error on one entry (permission denial, broken symlink) is
// logged and the entry skipped, and the walk continues over the rest of
// the tree.
type walker struct {
	reg    *Registry
	logger *log.Logger
}

// walkItem is one pending entry on the explicit traversal stack.
type walkItem struct {
	path  string
	depth int
}

// walk enumerates every non-tag-file entry under root, including the
// root itself, and records parent/child structural edges through the
// registry. The traversal uses an explicit stack so per-entry failures
// never abort the walk.
func (w *walker) walk(root string) {
	rootDir := w.reg.GetOrCreate(RootDirectory())

	stack := []walkItem{{path: root, depth: 0}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, ok := w.visit(item, rootDir)
		if !ok {
			continue
		}
		// Reverse push keeps traversal in directory-listing order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkItem{path: children[i], depth: item.depth + 1})
		}
	}
}

// visit handles one entry: canonicalize, register the node, wire it to
// its parent, and return child paths to descend into. A false return
// means the entry was skipped (tag file or per-entry error).
func (w *walker) visit(item walkItem, rootDir NodeIndex) (children []string, ok bool) {
	if isTagFileName(filepath.Base(item.path)) {
		return nil, false
	}

	info, err := os.Lstat(item.path)
	if err != nil {
		w.logger.Errorf("walk %s: %v", item.path, err)
		return nil, false
	}

	path, err := canonicalize(item.path)
	if err != nil {
		w.logger.Errorf("walk %s: %v", item.path, err)
		return nil, false
	}

	// Kind follows the resolved target, so a symlink to a directory
	// registers as a directory even though it is not descended into.
	resolved, err := os.Stat(path)
	if err != nil {
		w.logger.Errorf("walk %s: %v", item.path, err)
		return nil, false
	}

	node := FileNode(path)
	if resolved.IsDir() {
		node = DirectoryNode(path)
	}
	idx := w.reg.GetOrCreate(node)

	if item.depth == 0 {
		w.reg.ConnectIndex(rootDir, idx, RelChild)
		w.reg.ConnectIndex(idx, rootDir, RelParent)
	} else {
		parentPath, err := canonicalize(filepath.Dir(item.path))
		if err != nil {
			w.logger.Errorf("walk %s: %v", item.path, err)
			return nil, false
		}
		parent := w.reg.GetOrCreate(DirectoryNode(parentPath))
		w.reg.ConnectIndex(parent, idx, RelChild)
		w.reg.ConnectIndex(idx, parent, RelParent)
	}

	// Descend into real directories only; symlinked directories get a
	// node but no traversal, which keeps cyclic links from looping.
	if !info.IsDir() {
		return nil, true
	}
	entries, err := os.ReadDir(item.path)
	if err != nil {
		w.logger.Errorf("walk %s: %v", item.path, err)
		return nil, true
	}
	children = make([]string, len(entries))
	for i, entry := range entries {
		children[i] = filepath.Join(item.path, entry.Name())
	}
	return children, true
}
