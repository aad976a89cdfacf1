package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/infrastructure/api"
	"github.com/timsexperiments/sitenav/internal/config"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		host       string
		port       int
		revalidate time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sidebar preview API",
		Long: `Start the read-only sidebar preview API.

Routes:
  GET /health                  liveness
  GET /api/v1/site             site metadata
  GET /api/v1/sidebar          nested sidebar
  GET /api/v1/sidebar/outline  flattened sidebar in display order
  GET /api/v1/validate         validation report (200 valid, 422 invalid)
  GET /api/v1/slugs/{slug}     where a slug sits and which document backs it
  GET /metrics                 Prometheus metrics

When content is checked the sidebar is re-validated every --revalidate
interval so the metrics follow documents added or removed while serving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := serveOverrides(host, port)
			if cmd.Flags().Changed("revalidate") {
				overrides = append(overrides, config.WithRevalidateInterval(revalidate))
			}
			return runServe(cmd.Context(), flags, overrides)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 4322)")
	cmd.Flags().DurationVar(&revalidate, "revalidate", 0, "Re-validate content on this interval, 0 disables (default: 30s)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, overrides []config.AppConfigOption) error {
	cfg, err := loadConfig(flags, overrides...)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting sitenav", attrs...)

	client, err := newClient(cfg, logger, true)
	if err != nil {
		return err
	}

	report, err := client.Validate(ctx)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !report.Valid() {
		logger.Warn("serving an invalid sidebar", slog.Int("errors", len(report.Errors())))
	}

	apiServer := api.NewAPIServer(client,
		api.WithCORSOrigins(cfg.CORSOrigins()...),
		api.WithVersion(version),
	)

	apiServer.Metrics().ObserveValidation(report)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if client.ContentChecked() {
		periodic := service.NewPeriodicValidation(client.Navigation, cfg.RevalidateInterval(), apiServer.Metrics(), logger)
		periodic.Start(ctx)
		defer periodic.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.ListenAndServe(cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// serveOverrides turns the serve flags into config overrides.
func serveOverrides(host string, port int) []config.AppConfigOption {
	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	return opts
}
