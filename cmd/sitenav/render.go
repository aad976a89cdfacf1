package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the sidebar in display order",
		Long: `Print the sidebar exactly as the site displays it: entries in declaration
order, nested by group, each link followed by its published path.

Formats:
  text   indented list (default)
  json   flat list of entries with depth, label, slug and href`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runRender(cmd *cobra.Command, flags *globalFlags, format string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, newLogger(cfg), false)
	if err != nil {
		return err
	}

	outline := client.Outline()
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		_, err := fmt.Fprint(out, outline.Text())
		return err
	case "json":
		type entryJSON struct {
			Depth int    `json:"depth"`
			Label string `json:"label"`
			Slug  string `json:"slug,omitempty"`
			Href  string `json:"href,omitempty"`
		}
		entries := make([]entryJSON, 0, len(outline.Entries()))
		for _, e := range outline.Entries() {
			entries = append(entries, entryJSON{Depth: e.Depth(), Label: e.Label(), Slug: e.Slug(), Href: e.Href()})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown format %q: want text or json", format)
	}
}
