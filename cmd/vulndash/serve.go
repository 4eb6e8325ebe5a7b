package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/open-sspm/vulndash/internal/config"
	"github.com/open-sspm/vulndash/internal/dashboard"
	httpapp "github.com/open-sspm/vulndash/internal/http"
	"github.com/open-sspm/vulndash/internal/loader"
	"github.com/open-sspm/vulndash/internal/logging"
	"github.com/open-sspm/vulndash/internal/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveOpts struct {
	addr        string
	metricsAddr string
	source      string
}

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Run the dashboard HTTP server.",
	Args:        cobra.NoArgs,
	Annotations: structuredLogging(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = serveOpts.addr
		}
		if cmd.Flags().Changed("metrics-addr") {
			cfg.MetricsAddr = serveOpts.metricsAddr
		}
		if cmd.Flags().Changed("source") {
			cfg.DataSource = serveOpts.source
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.BootstrapFromEnv(logging.BootstrapOptions{
			Command: cmd.CommandPath(),
			Writer:  os.Stdout,
			Level:   logLevel,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().StringVar(&serveOpts.metricsAddr, "metrics-addr", "", "Metrics listen address, or off (overrides METRICS_ADDR)")
	serveCmd.Flags().StringVar(&serveOpts.source, "source", "", "Dataset path or URL loaded at startup (overrides DATA_SOURCE)")
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	dash := dashboard.New(logger)
	srv := httpapp.NewEchoServer(cfg, dash, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loadInitialDataset(gctx, loader.New(cfg.FetchTimeout), dash, cfg.DataSource, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if cfg.MetricsEnabled() {
		_, metricsErr := metrics.StartServer(gctx, cfg.MetricsAddr, logger)
		g.Go(func() error {
			for err := range metricsErr {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// loadInitialDataset populates dash from source. Failures leave the dashboard empty
// so the page offers an upload instead.
func loadInitialDataset(ctx context.Context, ld *loader.Loader, dash *dashboard.Dashboard, source string, logger *slog.Logger) {
	records, err := ld.Load(ctx, source)
	switch {
	case err == nil:
		dash.Load(source, records)
	case errors.Is(err, loader.ErrUnavailable):
		logger.Warn("dataset unavailable, waiting for upload", "source", source, "error", err)
	default:
		logger.Error("dataset load failed, waiting for upload", "source", source, "error", err)
	}
}
