package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/internal/cli"
	httpAdapter "github.com/aretw0/fsg/pkg/adapters/http"
	"github.com/aretw0/fsg/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the automaton over a JSON API: generate, match, the check harness,
stored reports, the definition and its Mermaid diagram. The OpenAPI document
is served at /openapi.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")
		withMetrics, _ := cmd.Flags().GetBool("metrics")

		var (
			extra      []fsg.Option
			serverOpts []httpAdapter.Option
		)
		if withMetrics {
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			extra = append(extra, fsg.WithLifecycleHooks(observability.NewMetrics(reg).Hooks()))
			serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}

		engine, logger, err := setup(cmd, extra...)
		if err != nil {
			return err
		}

		store, closeStore, err := cli.OpenStore(storeOptions(cmd))
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("Closing report store failed", "err", err)
			}
		}()
		if store != nil {
			serverOpts = append(serverOpts, httpAdapter.WithStore(store))
		}
		serverOpts = append(serverOpts, httpAdapter.WithLogger(logger))

		server := httpAdapter.NewServer(engine, serverOpts...)
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Serving automaton %q on %s", engine.Name, srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return srv.Close()
			}
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Server stopped gracefully")
			return nil
		})

		if watch {
			g.Go(func() error {
				return cli.WatchEngine(ctx, engine, logger, func(next *fsg.Engine) {
					server.SetEngine(next)
				})
			})
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("watch", false, "Reload the automaton when its definition changes")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
	storeFlags(serveCmd, cli.StoreMemory)
}
