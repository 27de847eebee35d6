package taggraph

import (
	"testing"
)

func TestRegistryDedup(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  int // distinct handles
	}{
		{
			name:  "SamePathSameHandle",
			nodes: []Node{FileNode("/a/b"), FileNode("/a/b")},
			want:  1,
		},
		{
			name:  "DifferentPaths",
			nodes: []Node{FileNode("/a/b"), FileNode("/a/c")},
			want:  2,
		},
		{
			name:  "FileAndDirectoryDiffer",
			nodes: []Node{FileNode("/a/b"), DirectoryNode("/a/b")},
			want:  2,
		},
		{
			name:  "TagsByValue",
			nodes: []Node{TagNode("red"), TagNode("red"), TagNode("blue")},
			want:  2,
		},
		{
			name:  "SingletonAnchors",
			nodes: []Node{RootTag(), RootDirectory(), RootTag(), RootDirectory()},
			want:  2,
		},
		{
			name:  "EmptyTagIsAValidTag",
			nodes: []Node{TagNode(""), TagNode("")},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(nil)
			seen := make(map[NodeIndex]struct{})
			for _, n := range tt.nodes {
				seen[reg.GetOrCreate(n)] = struct{}{}
			}
			if len(seen) != tt.want {
				t.Errorf("distinct handles = %d, want %d", len(seen), tt.want)
			}
			if got := reg.Graph().NodeCount(); got != tt.want {
				t.Errorf("NodeCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegistryFormsAgree(t *testing.T) {
	reg := NewRegistry(nil)

	n := TagNode("shared")
	byValue := reg.GetOrCreate(n)
	byRef := reg.GetOrCreateRef(&n)
	if byValue != byRef {
		t.Errorf("consuming form returned %d, borrowing form %d", byValue, byRef)
	}
}

func TestRegistryBijection(t *testing.T) {
	reg := NewRegistry(nil)
	g := reg.Graph()

	nodes := []Node{
		FileNode("/x"),
		DirectoryNode("/y"),
		TagNode("t"),
		RootTag(),
		RootDirectory(),
	}
	for _, n := range nodes {
		reg.GetOrCreate(n)
	}

	for _, n := range nodes {
		idx, ok := g.Lookup(n)
		if !ok {
			t.Fatalf("Lookup(%v) missing", n)
		}
		back, ok := g.Node(idx)
		if !ok || back != n {
			t.Errorf("Node(%d) = %v, want %v", idx, back, n)
		}
	}
}

func TestGraphRelationCoexistence(t *testing.T) {
	reg := NewRegistry(nil)
	g := reg.Graph()

	tag := TagNode("favorite")
	file := FileNode("/root/img.png")

	// Both directions and both labels on the same pair must survive.
	reg.Connect(file, tag, RelHasTag)
	reg.Connect(tag, file, RelTagAssignedTo)
	reg.Connect(file, tag, RelTagAssignedTo)

	if got := g.EdgeCount(); got != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", got)
	}

	fi, _ := g.Lookup(file)
	ti, _ := g.Lookup(tag)
	for _, want := range []Edge{
		{From: fi, To: ti, Rel: RelHasTag},
		{From: ti, To: fi, Rel: RelTagAssignedTo},
		{From: fi, To: ti, Rel: RelTagAssignedTo},
	} {
		if !g.HasEdge(want.From, want.To, want.Rel) {
			t.Errorf("missing edge %v", want)
		}
	}
}

func TestConnectIdempotent(t *testing.T) {
	reg := NewRegistry(nil)
	g := reg.Graph()

	for i := 0; i < 3; i++ {
		reg.Connect(RootTag(), TagNode("red"), RelHasTag)
	}

	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount() = %d, want 2", got)
	}
}

func TestGraphAdjacency(t *testing.T) {
	reg := NewRegistry(nil)
	g := reg.Graph()

	dir := DirectoryNode("/d")
	file := FileNode("/d/f")
	tag := TagNode("t")

	reg.Connect(dir, file, RelChild)
	reg.Connect(file, dir, RelParent)
	reg.Connect(file, tag, RelHasTag)

	fi, _ := g.Lookup(file)

	if got := len(g.Out(fi)); got != 2 {
		t.Errorf("Out = %d edges, want 2", got)
	}
	if got := len(g.In(fi)); got != 1 {
		t.Errorf("In = %d edges, want 1", got)
	}
	if got := len(g.OutRel(fi, RelHasTag)); got != 1 {
		t.Errorf("OutRel(HasTag) = %d edges, want 1", got)
	}
	if got := len(g.OutRel(fi, RelChild)); got != 0 {
		t.Errorf("OutRel(Child) = %d edges, want 0", got)
	}
}

func TestNodeLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"File", FileNode("/root/img.png"), "img.png"},
		{"Directory", DirectoryNode("/root/photos"), "photos/"},
		{"Tag", TagNode("red"), "[red]"},
		{"RootDirectory", RootDirectory(), "ROOT_DIR"},
		{"RootTag", RootTag(), "ROOT_TAG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
