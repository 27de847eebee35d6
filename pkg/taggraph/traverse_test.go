package taggraph

import (
	"path/filepath"
	"testing"
)

// traversalFixture builds a small tagged tree:
//
//	root/
//	  photos/        dir.tags: trip
//	    img.png      img.tags: favorite
//	  notes.txt
func traversalFixture(t *testing.T) (*Graph, string) {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "photos", "dir.tags"), "trip\n")
	writeTestFile(t, filepath.Join(root, "photos", "img.png"), "")
	writeTestFile(t, filepath.Join(root, "photos", "img.tags"), "favorite\n")
	writeTestFile(t, filepath.Join(root, "notes.txt"), "")
	return mustBuild(t, root), root
}

func tagNames(nodes []Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Tag
	}
	return names
}

func TestTagsOf(t *testing.T) {
	g, root := traversalFixture(t)

	tests := []struct {
		name  string
		node  Node
		want  map[string]bool
		avoid []string
	}{
		{
			name: "FileInheritsDirectoryTags",
			node: FileNode(canon(t, filepath.Join(root, "photos", "img.png"))),
			want: map[string]bool{"favorite": true, "trip": true},
		},
		{
			name:  "DirectoryOwnTagsOnly",
			node:  DirectoryNode(canon(t, filepath.Join(root, "photos"))),
			want:  map[string]bool{"trip": true},
			avoid: []string{"favorite"},
		},
		{
			name:  "UntaggedFile",
			node:  FileNode(canon(t, filepath.Join(root, "notes.txt"))),
			want:  map[string]bool{},
			avoid: []string{"favorite", "trip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := mustLookup(t, g, tt.node)
			got := tagNames(TagsOf(g, idx))
			gotSet := make(map[string]bool, len(got))
			for _, name := range got {
				gotSet[name] = true
			}
			for name := range tt.want {
				if !gotSet[name] {
					t.Errorf("missing tag %q in %v", name, got)
				}
			}
			for _, name := range tt.avoid {
				if gotSet[name] {
					t.Errorf("unexpected tag %q in %v", name, got)
				}
			}
		})
	}
}

func TestTagsOfDoesNotFollowAssignments(t *testing.T) {
	g, root := traversalFixture(t)

	// Following TagAssignedTo from a tag would fan out to other tagged
	// entities and pull in their tags; the HasTag/Parent filter must not.
	img := mustLookup(t, g, FileNode(canon(t, filepath.Join(root, "photos", "img.png"))))
	for _, idx := range Reachable(g, img, FollowRelations(RelParent, RelHasTag)) {
		n, _ := g.Node(idx)
		if n.Kind == KindRootTag {
			t.Error("traversal reached RootTag through a filtered edge set")
		}
	}
}

func TestAssignedTo(t *testing.T) {
	g, root := traversalFixture(t)

	tag := mustLookup(t, g, TagNode("favorite"))
	entities := AssignedTo(g, tag)
	if len(entities) != 1 {
		t.Fatalf("AssignedTo(favorite) = %d entities, want 1", len(entities))
	}
	want := canon(t, filepath.Join(root, "photos", "img.png"))
	if entities[0].Path != want {
		t.Errorf("assigned entity = %s, want %s", entities[0].Path, want)
	}
}

func TestAllTags(t *testing.T) {
	g, _ := traversalFixture(t)

	got := tagNames(AllTags(g))
	want := map[string]bool{"trip": true, "favorite": true}
	if len(got) != len(want) {
		t.Fatalf("AllTags = %v, want 2 tags", got)
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("unexpected tag %q", name)
		}
	}
}

func TestReachableUnknownStart(t *testing.T) {
	g := NewGraph()
	if got := Reachable(g, 42, nil); got != nil {
		t.Errorf("Reachable on unknown handle = %v, want nil", got)
	}
}
