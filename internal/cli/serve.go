package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/internal/server"
	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// shutdownTimeout bounds graceful shutdown on interrupt.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve a tag graph over a read-only HTTP API",
		Long: `Serve a tag graph over a read-only HTTP API.

The graph is built once from path (default ".") at startup and then
served unchanged until the process exits. Endpoints include /api/graph
for the full node-link JSON, /api/tags for the tag list, and
/render.svg for an on-the-fly Graphviz rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return c.runServe(cmd.Context(), root, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", c.Config.Serve.Addr, "listen address")

	return cmd
}

// runServe builds the graph and serves it until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, root, addr string) error {
	p := newProgress(c.Logger)
	g, _, err := taggraph.Build(root, taggraph.Options{Logger: c.Logger})
	if err != nil {
		return err
	}
	p.done("Built graph")

	srv := server.New(g, root, c.Logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	printInfo("Serving %d nodes on %s (build %s)", g.NodeCount(), addr, srv.BuildID())
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
