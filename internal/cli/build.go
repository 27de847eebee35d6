package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/pkg/graphio"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// buildCommand creates the build command for scanning a directory tree.
func (c *CLI) buildCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Scan a directory tree and write its tag graph as JSON",
		Long: `Scan a directory tree and write its tag graph as JSON.

The build command walks the tree rooted at path (default "."), reads
every *.tags file it finds, and assembles files, directories, and tags
into a single graph. A "dir.tags" file tags its containing directory;
any other "name.tags" file tags the sibling entries whose name or stem
matches "name".

The resulting graph.json can be fed to 'query', 'render', and 'serve'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return c.runBuild(cmd.Context(), root, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output file for the graph JSON")

	return cmd
}

// runBuild builds the graph for root and writes it to output.
func (c *CLI) runBuild(ctx context.Context, root, output string) error {
	p := newProgress(c.Logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Scanning %s...", root))
	spinner.Start()

	g, _, err := taggraph.Build(root, taggraph.Options{Logger: c.Logger})
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Built graph with %d nodes", g.NodeCount()))

	if err := graphio.WriteGraphFile(g, output); err != nil {
		return err
	}

	printSuccess("Graph written")
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), false)
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
	return nil
}
