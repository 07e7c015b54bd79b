package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/internal/cli"
	"github.com/aretw0/fsg/pkg/adapters/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts fsg as an MCP server so that agents can generate and match strings
as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		watch, _ := cmd.Flags().GetBool("watch")

		engine, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(engine, mcp.WithLogger(logger))

		runCtx, stop := context.WithCancel(cmd.Context())
		defer stop()
		g, ctx := errgroup.WithContext(runCtx)
		if watch {
			g.Go(func() error {
				return cli.WatchEngine(ctx, engine, logger, func(next *fsg.Engine) {
					srv.SetEngine(next)
				})
			})
		}

		switch transport {
		case "stdio":
			// Stdout carries JSON-RPC.
			log.SetOutput(os.Stderr)
			logger.Info("Starting MCP server (stdio)")
			g.Go(func() error {
				// ServeStdio returns on EOF; the watcher stops with it.
				defer stop()
				return srv.ServeStdio()
			})
		case "sse":
			logger.Info("Starting MCP server (SSE)", "port", port)
			g.Go(func() error {
				if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().Bool("watch", false, "Reload the automaton when its definition changes")
}
