package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timsexperiments/sitenav/infrastructure/sitefile"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site definition to a file or stdout",
		Long: `Write the site definition.

Formats:
  starlight  JSON options for the Starlight integration (default)
  yaml       site file, loadable with --site-file
  json       site file, loadable with --site-file

The site is validated first (structure only); an invalid site is not exported
unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags, format, output, force)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "starlight", "Output format: starlight, yaml, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "Export even when the site is invalid")

	return cmd
}

func runExport(cmd *cobra.Command, flags *globalFlags, format, output string, force bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cfg), false)
	if err != nil {
		return err
	}

	if !force {
		if err := client.Site().Validate(nil); err != nil {
			return fmt.Errorf("refusing to export invalid site: %w", err)
		}
	}

	var buf bytes.Buffer
	switch format {
	case "starlight":
		err = sitefile.ExportStarlight(&buf, client.Site())
	case "yaml":
		err = sitefile.Encode(&buf, client.Site(), sitefile.FormatYAML)
	case "json":
		err = sitefile.Encode(&buf, client.Site(), sitefile.FormatJSON)
	default:
		return fmt.Errorf("unknown format %q: want starlight, yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
