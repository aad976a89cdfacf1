package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/timsexperiments/sitenav/internal/mcp"
)

func stdioCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

Tools: get_sidebar, validate_sidebar, resolve_slug.
Resources: sitenav://sidebar and sitenav://docs/{slug}.

Logs go to stderr; stdout carries protocol frames only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(flags)
		},
	}
}

func runStdio(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger, true)
	if err != nil {
		return err
	}

	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("source", client.Source()),
		slog.Bool("content_checked", client.ContentChecked()),
	)

	return mcp.NewServer(client.Navigation, version, logger).ServeStdio()
}
