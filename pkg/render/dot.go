// Package render turns a built tag graph into Graphviz DOT and renders
// it to SVG or PNG in-process via [github.com/goccy/go-graphviz].
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// Options configures DOT emission.
type Options struct {
	// Detailed includes the canonical path in entity labels.
	// When false, only the short display label is shown.
	Detailed bool
	// ShowAssignments includes TagAssignedTo edges. They mirror HasTag
	// edges in the opposite direction and double the tag arrows, so the
	// default rendering omits them.
	ShowAssignments bool
}

// ToDOT converts a tag graph to Graphviz DOT.
// Node shape encodes the variant: boxes for files, folder shapes for
// directories, ellipses for tags, and double circles for the two anchors.
func ToDOT(g *taggraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tagmesh {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, n := range g.Nodes() {
		attrs := nodeAttrs(n, opts.Detailed)
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Rel == taggraph.RelTagAssignedTo && !opts.ShowAssignments {
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e.Rel), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n taggraph.Node, detailed bool) []string {
	label := n.Label()
	if detailed && n.IsEntity() {
		label = label + "\n" + n.Path
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch n.Kind {
	case taggraph.KindFile:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "fillcolor=white")
	case taggraph.KindDirectory:
		attrs = append(attrs, "shape=folder", "style=filled", "fillcolor=lightyellow")
	case taggraph.KindTag:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=lightblue")
	case taggraph.KindRootDirectory, taggraph.KindRootTag:
		attrs = append(attrs, "shape=doublecircle", "style=filled", "fillcolor=lightgrey")
	}
	return attrs
}

func edgeAttrs(rel taggraph.Relation) []string {
	attrs := []string{fmt.Sprintf("label=%q", rel.String()), "fontsize=10"}
	switch rel {
	case taggraph.RelHasTag:
		attrs = append(attrs, "color=steelblue")
	case taggraph.RelTagAssignedTo:
		attrs = append(attrs, "color=steelblue", "style=dashed")
	case taggraph.RelParent:
		attrs = append(attrs, "color=grey", "style=dotted")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderFormat(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag to a zero-origin viewBox
// with explicit pixel dimensions, which embeds more predictably.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
