package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/pkg/errors"
	"github.com/tagmesh/tagmesh/pkg/graphio"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// queryCommand creates the query command group.
func (c *CLI) queryCommand() *cobra.Command {
	var graphFile string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query tags and tagged entities",
		Long: `Query tags and tagged entities.

Queries run against a previously built graph.json (--graph), or build
one on the fly from the current directory when no file is given.`,
	}

	cmd.PersistentFlags().StringVarP(&graphFile, "graph", "g", "", "graph JSON file (default: build from current directory)")

	cmd.AddCommand(c.queryTagsCommand(&graphFile))
	cmd.AddCommand(c.queryTaggedCommand(&graphFile))
	cmd.AddCommand(c.queryListCommand(&graphFile))

	return cmd
}

// queryTagsCommand creates the "query tags" subcommand.
func (c *CLI) queryTagsCommand(graphFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tags [path]",
		Short: "List the tags that apply to a file or directory",
		Long: `List the tags that apply to a file or directory.

The result includes tags assigned to the entry itself and tags
inherited from its ancestor directories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(*graphFile)
			if err != nil {
				return err
			}

			idx, ok := taggraph.LookupPath(g, args[0])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no entry for %s in the graph", args[0])
			}

			tags := taggraph.TagsOf(g, idx)
			if len(tags) == 0 {
				printWarning("No tags apply to %s", args[0])
				return nil
			}
			printInfo("%d tag(s) apply to %s", len(tags), args[0])
			for _, tag := range tags {
				printTag(tag.Tag)
			}
			return nil
		},
	}
}

// queryTaggedCommand creates the "query tagged" subcommand.
func (c *CLI) queryTaggedCommand(graphFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tagged [tag]",
		Short: "List the files and directories a tag is assigned to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(*graphFile)
			if err != nil {
				return err
			}

			idx, ok := g.Lookup(taggraph.TagNode(args[0]))
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "unknown tag %q", args[0])
			}

			entities := taggraph.AssignedTo(g, idx)
			if len(entities) == 0 {
				printWarning("Tag %q is not assigned to anything", args[0])
				return nil
			}
			printInfo("%d entries tagged %q", len(entities), args[0])
			for _, e := range entities {
				printFile(e.Path)
			}
			return nil
		},
	}
}

// queryListCommand creates the "query list" subcommand.
func (c *CLI) queryListCommand(graphFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tag in the graph with its assignment count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(*graphFile)
			if err != nil {
				return err
			}

			tags := taggraph.AllTags(g)
			if len(tags) == 0 {
				printWarning("No tags in the graph")
				return nil
			}
			printInfo("%d tag(s)", len(tags))
			for _, tag := range tags {
				idx, _ := g.Lookup(tag)
				printDetail("[%s] assigned to %d entries", tag.Tag, len(taggraph.AssignedTo(g, idx)))
			}
			return nil
		},
	}
}

// loadGraph reads a graph from file, or builds one from the current
// directory when file is empty.
func (c *CLI) loadGraph(file string) (*taggraph.Graph, error) {
	if file == "" {
		g, _, err := taggraph.Build(".", taggraph.Options{Logger: c.Logger})
		return g, err
	}
	return graphio.ReadGraphFile(file)
}
