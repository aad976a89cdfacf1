package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/timsexperiments/sitenav/application/service"
)

var errValidationFailed = errors.New("validation failed")

func validateCmd(flags *globalFlags) *cobra.Command {
	var (
		asJSON bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the site definition and its sidebar",
		Long: `Validate the site definition and its sidebar.

Every problem is reported, not just the first: duplicate slugs, slugs with no
content document, and malformed nodes (both slug and items, neither, empty
items, empty label, or a slug outside the content path convention).

Documents present under the content root but absent from the sidebar are
reported as warnings; --strict turns them into errors.

Exits non-zero when validation fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, flags, asJSON, strict)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when documents are missing from the sidebar")

	return cmd
}

func runValidate(cmd *cobra.Command, flags *globalFlags, asJSON, strict bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger, true)
	if err != nil {
		return err
	}

	report, err := client.Validate(cmd.Context())
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	logger.Debug("validated", slog.String("source", client.Source()), slog.Bool("valid", report.Valid()))

	out := cmd.OutOrStdout()
	if asJSON {
		if err := writeReportJSON(out, report); err != nil {
			return err
		}
	} else {
		writeReportText(out, report, client.Source())
	}

	if !report.Valid() || (strict && len(report.Orphans()) > 0) {
		return errValidationFailed
	}
	return nil
}

func writeReportText(w io.Writer, r service.Report, source string) {
	for _, err := range r.Errors() {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
	}
	for _, o := range r.Orphans() {
		_, _ = fmt.Fprintf(w, "warning: document %q is not in the sidebar\n", o)
	}

	content := "content not checked"
	if r.ContentChecked() {
		content = fmt.Sprintf("%d documents", r.Documents())
	}
	status := "ok"
	if !r.Valid() {
		status = fmt.Sprintf("%d errors", len(r.Errors()))
	}
	_, _ = fmt.Fprintf(w, "%s (%s): %d nodes, %d leaves, depth %d, %s: %s\n",
		r.Title(), source, r.Nodes(), r.Leaves(), r.Depth(), content, status)
}

func writeReportJSON(w io.Writer, r service.Report) error {
	type reportJSON struct {
		Valid          bool     `json:"valid"`
		Title          string   `json:"title"`
		Nodes          int      `json:"nodes"`
		Leaves         int      `json:"leaves"`
		Groups         int      `json:"groups"`
		Depth          int      `json:"depth"`
		ContentChecked bool     `json:"content_checked"`
		Documents      int      `json:"documents"`
		Orphans        []string `json:"orphans"`
		Errors         []string `json:"errors"`
	}

	out := reportJSON{
		Valid:          r.Valid(),
		Title:          r.Title(),
		Nodes:          r.Nodes(),
		Leaves:         r.Leaves(),
		Groups:         r.Groups(),
		Depth:          r.Depth(),
		ContentChecked: r.ContentChecked(),
		Documents:      r.Documents(),
		Orphans:        append([]string{}, r.Orphans()...),
		Errors:         []string{},
	}
	for _, err := range r.Errors() {
		out.Errors = append(out.Errors, err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
