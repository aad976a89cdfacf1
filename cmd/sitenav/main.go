// Package main is the entry point for the sitenav CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timsexperiments/sitenav"
	"github.com/timsexperiments/sitenav/internal/config"
	"github.com/timsexperiments/sitenav/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command. Zero values leave the
// environment configuration untouched.
type globalFlags struct {
	envFile          string
	siteFile         string
	contentDir       string
	extensions       []string
	skipContentCheck bool
	logLevel         string
	logFormat        string
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "sitenav",
		Short: "Navigation sidebar tooling for the Intro to Front End Engineering site",
		Long: `sitenav loads the site definition and its navigation sidebar, validates
that every entry is well formed, unique and backed by a content document,
and renders, exports or serves the result.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  SITENAV_SITE_FILE            YAML or JSON site definition (default: built-in course)
  SITENAV_CONTENT_DIR          Content documents root (default: src/content/docs)
  SITENAV_CONTENT_EXTENSIONS   Document extensions (default: .md,.mdx,.mdoc)
  SITENAV_SKIP_CONTENT_CHECK   Validate structure only (default: false)
  SITENAV_HOST                 Preview server host (default: 127.0.0.1)
  SITENAV_PORT                 Preview server port (default: 4322)
  SITENAV_CORS_ORIGINS         Comma-separated allowed origins (default: *)
  SITENAV_LOG_LEVEL            DEBUG, INFO, WARN, ERROR (default: INFO)
  SITENAV_LOG_FORMAT           pretty, json (default: pretty)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	pf.StringVar(&flags.siteFile, "site-file", "", "YAML or JSON site definition (default: built-in course)")
	pf.StringVar(&flags.contentDir, "content-dir", "", "Content documents root (default: src/content/docs)")
	pf.StringSliceVar(&flags.extensions, "ext", nil, "Document extensions (default: .md,.mdx,.mdoc)")
	pf.BoolVar(&flags.skipContentCheck, "skip-content-check", false, "Validate structure only")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: pretty, json")

	cmd.AddCommand(validateCmd(flags))
	cmd.AddCommand(renderCmd(flags))
	cmd.AddCommand(exportCmd(flags))
	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(stdioCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the global flag overrides.
func loadConfig(flags *globalFlags, extra ...config.AppConfigOption) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flags.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	var opts []config.AppConfigOption
	if flags.siteFile != "" {
		opts = append(opts, config.WithSiteFile(flags.siteFile))
	}
	if flags.contentDir != "" {
		opts = append(opts, config.WithContentDir(flags.contentDir))
	}
	if len(flags.extensions) > 0 {
		opts = append(opts, config.WithContentExtensions(flags.extensions))
	}
	if flags.skipContentCheck {
		opts = append(opts, config.WithSkipContentCheck(true))
	}
	if flags.logLevel != "" {
		opts = append(opts, config.WithLogLevel(flags.logLevel))
	}
	if flags.logFormat != "" {
		opts = append(opts, config.WithLogFormat(config.LogFormat(strings.ToLower(flags.logFormat))))
	}
	opts = append(opts, extra...)

	return cfg.Apply(opts...), nil
}

// newClient builds a sitenav client from cfg. checkContent false skips the
// content root entirely, for commands that never look at documents.
func newClient(cfg config.AppConfig, logger *slog.Logger, checkContent bool) (*sitenav.Client, error) {
	opts := []sitenav.Option{sitenav.WithLogger(logger)}
	if cfg.SiteFile() != "" {
		opts = append(opts, sitenav.WithSiteFile(cfg.SiteFile()))
	}
	if checkContent && !cfg.SkipContentCheck() {
		opts = append(opts,
			sitenav.WithContentDir(cfg.ContentDir()),
			sitenav.WithExtensions(cfg.ContentExtensions()...),
		)
	}

	client, err := sitenav.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create sitenav client: %w", err)
	}
	return client, nil
}

func newLogger(cfg config.AppConfig) *slog.Logger {
	return log.NewLogger(cfg).Slog()
}
