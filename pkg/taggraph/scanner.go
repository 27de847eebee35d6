package taggraph

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	apperrors "github.com/tagmesh/tagmesh/pkg/errors"
)

// TagFileExt is the extension (without dot) that marks a sidecar tag file.
const TagFileExt = "tags"

// DirTagFileName is the reserved tag-file name whose tags attach to the
// containing directory itself rather than to sibling entries.
const DirTagFileName = "dir.tags"

// tagFilePattern matches every tag file under a root, including the
// root's own immediate children.
const tagFilePattern = "**/*." + TagFileExt

// scanner implements the tag-file pass. It is strict: any
// canonicalization or read failure aborts the whole scan, because a
// broken tag corpus usually means a systemic configuration problem.
// A tag file whose stem matches no sibling is only a warning.
type scanner struct {
	reg    *Registry
	logger *log.Logger
}

// scan discovers every tag file under root, resolves its attachment
// targets, and records tag-membership edges through the registry.
func (s *scanner) scan(root string) error {
	rootTag := s.reg.GetOrCreate(RootTag())

	s.logger.Debugf("scanning for tag files: %s", filepath.Join(root, tagFilePattern))

	tagFiles, err := findTagFiles(root)
	if err != nil {
		return err
	}

	for _, rel := range tagFiles {
		if err := s.scanTagFile(root, rel, rootTag); err != nil {
			return err
		}
	}
	return nil
}

// findTagFiles returns root-relative paths of all tag files, in the
// deterministic lexical order of the filesystem walk. Discovery IO
// failures (missing root, unreadable subtree) abort the scan; a
// directory that cannot be listed may hide tag files, and silently
// skipping it would yield a graph that looks complete but is not.
func findTagFiles(root string) ([]string, error) {
	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), tagFilePattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		if err == doublestar.ErrBadPattern {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "compile tag file pattern %q", tagFilePattern)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "search tag files under %s", root)
	}
	return files, nil
}

// scanTagFile processes one tag file given as a root-relative path.
func (s *scanner) scanTagFile(root, rel string, rootTag NodeIndex) error {
	tagFile := filepath.Join(root, rel)
	s.logger.Debugf("visiting tag file %s", tagFile)

	dirPath, err := canonicalize(filepath.Dir(tagFile))
	if err != nil {
		return err
	}
	dir := s.reg.GetOrCreate(DirectoryNode(dirPath))

	targets, err := s.attachTargets(tagFile, dirPath, dir)
	if err != nil {
		return err
	}

	tags, err := readTagFile(tagFile)
	if err != nil {
		return err
	}

	for _, tag := range tags {
		t := s.reg.GetOrCreate(TagNode(tag))
		s.reg.ConnectIndex(rootTag, t, RelHasTag)
		for _, target := range targets {
			s.reg.ConnectIndex(target, t, RelHasTag)
			s.reg.ConnectIndex(t, target, RelTagAssignedTo)
		}
	}
	return nil
}

// attachTargets resolves the entities a tag file's tags attach to.
//
// dir.tags attaches to the containing directory only. Any other name
// attaches to every sibling entry (file or directory, excluding other tag
// files) whose full name or own stem equals the tag file's stem. Zero
// matches is legal and yields an empty target set.
func (s *scanner) attachTargets(tagFile, dirPath string, dir NodeIndex) ([]NodeIndex, error) {
	name := filepath.Base(tagFile)
	if name == DirTagFileName {
		s.logger.Debugf("directory tag file, target %s", dirPath)
		return []NodeIndex{dir}, nil
	}

	tagStem := strings.TrimSuffix(name, "."+TagFileExt)

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "read directory %s", dirPath)
	}

	var targets []NodeIndex
	for _, entry := range entries {
		entryName := entry.Name()
		if isTagFileName(entryName) {
			// Never associate a tag file with itself or another tag file.
			continue
		}
		if entryName != tagStem && stem(entryName) != tagStem {
			continue
		}

		entryPath, err := canonicalize(filepath.Join(dirPath, entryName))
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(entryPath)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "stat %s", entryPath)
		}

		node := FileNode(entryPath)
		if info.IsDir() {
			node = DirectoryNode(entryPath)
		}
		s.logger.Debugf("matched %s for tag file %s", entryPath, tagFile)
		targets = append(targets, s.reg.GetOrCreate(node))
	}

	if len(targets) == 0 {
		s.logger.Warnf("tag file %s has no associated entries", tagFile)
	}
	return targets, nil
}

// readTagFile reads a tag file: UTF-8 text, one tag per line, in file
// order, with no trimming, deduplication, comments, or escaping. An empty
// line yields an empty-string tag. Lines may be arbitrarily long, so the
// reader splits on newlines itself instead of using bufio.Scanner's
// capped line buffer.
func readTagFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "open tag file %s", path)
	}
	defer f.Close()

	var tags []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "read tag file %s", path)
		}
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			tags = append(tags, line)
		}
		if err == io.EOF {
			return tags, nil
		}
	}
}

// isTagFileName reports whether a file name carries the tag-file extension.
func isTagFileName(name string) bool {
	return filepath.Ext(name) == "."+TagFileExt
}

// stem returns the file name with its extension removed. A name without
// an extension, or consisting only of an extension (".bashrc"), is its
// own stem.
func stem(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// canonicalize resolves a path to its absolute, symlink-free form. This
// form is the identity key for path-bearing nodes, so both builder passes
// must go through it before any registry lookup.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeIO, err, "resolve %s", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeIO, err, "canonicalize %s", abs)
	}
	return resolved, nil
}
