package graphio

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// sample builds a small in-memory graph with every variant and relation.
func sample() *taggraph.Graph {
	reg := taggraph.NewRegistry(nil)
	dir := taggraph.DirectoryNode("/root/photos")
	img := taggraph.FileNode("/root/photos/img.png")
	tag := taggraph.TagNode("favorite")

	reg.Connect(taggraph.RootDirectory(), dir, taggraph.RelChild)
	reg.Connect(dir, taggraph.RootDirectory(), taggraph.RelParent)
	reg.Connect(dir, img, taggraph.RelChild)
	reg.Connect(img, dir, taggraph.RelParent)
	reg.Connect(taggraph.RootTag(), tag, taggraph.RelHasTag)
	reg.Connect(img, tag, taggraph.RelHasTag)
	reg.Connect(tag, img, taggraph.RelTagAssignedTo)
	return reg.Graph()
}

func TestRoundTrip(t *testing.T) {
	g := sample()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if back.NodeCount() != g.NodeCount() {
		t.Errorf("nodes = %d, want %d", back.NodeCount(), g.NodeCount())
	}
	if back.EdgeCount() != g.EdgeCount() {
		t.Errorf("edges = %d, want %d", back.EdgeCount(), g.EdgeCount())
	}

	// Handles are stable across the round trip.
	for i, n := range g.Nodes() {
		idx, ok := back.Lookup(n)
		if !ok || int(idx) != i {
			t.Errorf("node %v: handle %d → %d after round trip", n, i, idx)
		}
	}
	for _, e := range g.Edges() {
		if !back.HasEdge(e.From, e.To, e.Rel) {
			t.Errorf("missing edge %v after round trip", e)
		}
	}
}

func TestFromGraphLabels(t *testing.T) {
	gj := FromGraph(sample())

	byKind := make(map[string]Node)
	for _, n := range gj.Nodes {
		byKind[n.Kind] = n
	}

	tests := []struct {
		kind  string
		label string
	}{
		{"file", "img.png"},
		{"directory", "photos/"},
		{"tag", "[favorite]"},
		{"root_directory", "ROOT_DIR"},
		{"root_tag", "ROOT_TAG"},
	}
	for _, tt := range tests {
		n, ok := byKind[tt.kind]
		if !ok {
			t.Fatalf("no %s node serialized", tt.kind)
		}
		if n.Label != tt.label {
			t.Errorf("%s label = %q, want %q", tt.kind, n.Label, tt.label)
		}
	}
}

func TestToGraphInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "UnknownKind",
			input: `{"nodes":[{"id":0,"kind":"blob"}],"edges":[]}`,
		},
		{
			name:  "UnknownRelation",
			input: `{"nodes":[{"id":0,"kind":"tag","tag":"a"},{"id":1,"kind":"file","path":"/f"}],"edges":[{"from":0,"to":1,"rel":"likes"}]}`,
		},
		{
			name:  "EdgeToMissingNode",
			input: `{"nodes":[{"id":0,"kind":"tag","tag":"a"}],"edges":[{"from":0,"to":9,"rel":"has_tag"}]}`,
		},
		{
			name:  "DuplicateID",
			input: `{"nodes":[{"id":0,"kind":"tag","tag":"a"},{"id":0,"kind":"tag","tag":"b"}],"edges":[]}`,
		},
		{
			name:  "DuplicateValue",
			input: `{"nodes":[{"id":0,"kind":"tag","tag":"a"},{"id":1,"kind":"tag","tag":"a"}],"edges":[]}`,
		},
		{
			name:  "Garbage",
			input: `{"nodes": [`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %s, want INVALID_FORMAT", errors.GetCode(err))
			}
		})
	}
}

func TestDeterministicOutput(t *testing.T) {
	a, err := MarshalGraph(sample())
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalGraph(sample())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("serialization is not deterministic")
	}

	var gj Graph
	if err := json.Unmarshal(a, &gj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(gj.Nodes) == 0 || len(gj.Edges) == 0 {
		t.Error("serialized graph is empty")
	}
}
