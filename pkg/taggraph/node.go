package taggraph

import (
	"fmt"
	"path/filepath"
)

// NodeKind identifies the variant of a [Node].
type NodeKind int

const (
	// KindFile is a regular file identified by its canonical path.
	KindFile NodeKind = iota
	// KindDirectory is a directory identified by its canonical path.
	KindDirectory
	// KindRootDirectory is the singleton anchor above the walked root.
	KindRootDirectory
	// KindRootTag is the singleton anchor owning every known tag.
	KindRootTag
	// KindTag is a tag identified by its exact string value.
	KindTag
)

// String returns the lowercase variant name used in serialization and logs.
func (k NodeKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindRootDirectory:
		return "root_directory"
	case KindRootTag:
		return "root_tag"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a value in the tag graph: a filesystem entity, a tag, or one of
// the two synthetic anchors. Node is a comparable value type and its
// identity is pure value equality - two File nodes with equal canonical
// paths are the same logical node. Path-bearing nodes must carry an
// absolute, symlink-resolved path before being handed to a [Registry];
// the registry cannot detect inconsistent canonicalization on its own.
//
// The zero value is a File node with an empty path and is not useful.
// Use the constructors below.
type Node struct {
	Kind NodeKind
	// Path is the canonical path for File and Directory nodes, empty otherwise.
	Path string
	// Tag is the tag string for Tag nodes, empty otherwise.
	Tag string
}

// FileNode returns a File node for the given canonical path.
func FileNode(path string) Node { return Node{Kind: KindFile, Path: path} }

// DirectoryNode returns a Directory node for the given canonical path.
func DirectoryNode(path string) Node { return Node{Kind: KindDirectory, Path: path} }

// TagNode returns a Tag node for the given tag string.
// Tag strings are compared exactly; the empty string is a valid tag.
func TagNode(tag string) Node { return Node{Kind: KindTag, Tag: tag} }

// RootDirectory returns the singleton anchor for the filesystem tree.
func RootDirectory() Node { return Node{Kind: KindRootDirectory} }

// RootTag returns the singleton anchor owning all tags.
func RootTag() Node { return Node{Kind: KindRootTag} }

// IsEntity reports whether the node represents a filesystem entity
// (a File or a Directory), as opposed to a tag or an anchor.
func (n Node) IsEntity() bool { return n.Kind == KindFile || n.Kind == KindDirectory }

// Label returns a short display label: the base name for files,
// "name/" for directories, "[tag]" for tags, and fixed markers for the
// anchor nodes.
func (n Node) Label() string {
	switch n.Kind {
	case KindFile:
		return filepath.Base(n.Path)
	case KindDirectory:
		return filepath.Base(n.Path) + "/"
	case KindRootDirectory:
		return "ROOT_DIR"
	case KindRootTag:
		return "ROOT_TAG"
	case KindTag:
		return "[" + n.Tag + "]"
	default:
		return n.Kind.String()
	}
}

// String returns a debug representation including the variant and payload.
func (n Node) String() string {
	switch n.Kind {
	case KindFile, KindDirectory:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Path)
	case KindTag:
		return fmt.Sprintf("tag(%q)", n.Tag)
	default:
		return n.Kind.String()
	}
}
