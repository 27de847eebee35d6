package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/pkg/cache"
	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/graphio"
	"github.com/tagmesh/tagmesh/pkg/render"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output          string // output file path (derived from input when empty)
	format          string // output format: "dot", "svg", "png"
	detailed        bool   // show full paths instead of short labels
	showAssignments bool   // include tag-to-entity assignment edges
	noCache         bool   // bypass the artifact cache
}

// validFormats is the set of supported render output formats.
var validFormats = map[string]bool{"dot": true, "svg": true, "png": true}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format:          c.Config.Render.Format,
		detailed:        c.Config.Render.Detailed,
		showAssignments: c.Config.Render.ShowAssignments,
	}
	if !validFormats[opts.format] {
		opts.format = "svg"
	}

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a tag graph to DOT, SVG, or PNG",
		Long: `Render a tag graph to DOT, SVG, or PNG.

The render command takes a graph.json file (produced by 'build') and
renders it with Graphviz. Tag-to-entity assignment edges are hidden by
default to keep the picture readable; pass --assignments to draw them.

SVG and PNG results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormats[opts.format] {
				return errors.New(errors.ErrCodeInvalidInput, "invalid format %q (must be 'dot', 'svg', or 'png')", opts.format)
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "label nodes with full paths")
	cmd.Flags().BoolVar(&opts.showAssignments, "assignments", opts.showAssignments, "draw tag-to-entity assignment edges")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// runRender loads the graph, renders it, and writes the result.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()

	data, cacheHit, err := c.renderGraph(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
	}

	printSuccess("Rendered %s", opts.format)
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	return nil
}

// renderGraph produces the requested artifact, consulting the cache for
// the Graphviz-backed formats. DOT output is cheap and never cached.
func (c *CLI) renderGraph(ctx context.Context, g *taggraph.Graph, opts renderOpts) (data []byte, cacheHit bool, err error) {
	dot := render.ToDOT(g, render.Options{
		Detailed:        opts.detailed,
		ShowAssignments: opts.showAssignments,
	})
	if opts.format == "dot" {
		return []byte(dot), false, nil
	}

	store := c.newCache(opts.noCache)
	defer store.Close()

	key := cache.ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{
		Format:          opts.format,
		Detailed:        opts.detailed,
		ShowAssignments: opts.showAssignments,
	})
	if cached, hit, err := store.Get(ctx, key); err == nil && hit {
		c.Logger.Debugf("Cache hit for %s", key)
		return cached, true, nil
	}

	switch opts.format {
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, false, err
	}

	if err := store.Set(ctx, key, data, 0); err != nil {
		c.Logger.Debugf("Cache store failed: %v", err)
	}
	return data, false, nil
}
