package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/barcoder/internal/history"
	"github.com/lehigh-university-libraries/barcoder/internal/session"
	"github.com/spf13/cobra"
)

func newLogsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse, export and clear the generation history",
		Long: `The generation history is owned by the service. Every subcommand reads it
fresh from the service; nothing is stored locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogsList(cmd, opts)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the generation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogsList(cmd, opts)
		},
	})
	cmd.AddCommand(newLogsClearCmd(opts))
	cmd.AddCommand(newLogsExportCmd(opts))

	return cmd
}

func runLogsList(cmd *cobra.Command, opts *rootOptions) error {
	sess := session.New(opts.client())
	if err := sess.Start(cmd.Context()); err != nil {
		return err
	}
	return history.Render(cmd.OutOrStdout(), sess.Logs())
}

func newLogsClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every generation log on the service",
		Example: `  barcoder logs clear --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the history without --yes")
			}

			sess := session.New(opts.client())
			if err := sess.ClearLogs(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All logs cleared successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing the history")

	return cmd
}

func newLogsExportCmd(opts *rootOptions) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the generation history to a file",
		Long: `Exports the generation history. CSV is produced by the service itself;
json, yaml and parquet are built from the service's log list.`,
		Example: `  # Save the service's CSV export as qr_generation_log.csv
  barcoder logs export

  # Write a parquet archive
  barcoder logs export --format parquet --output ./archive/history.parquet

  # Print yaml to stdout
  barcoder logs export --format yaml --output -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := history.ParseFormat(format)
			if err != nil {
				return err
			}
			if output == "" {
				output = history.DefaultFilename(f)
			}

			sess := session.New(opts.client())
			var buf bytes.Buffer
			if f == history.FormatCSV {
				err = sess.DownloadCSV(cmd.Context(), &buf)
			} else {
				if err = sess.Start(cmd.Context()); err == nil {
					err = history.Export(&buf, f, sess.Logs())
				}
			}
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			absPath, _ := filepath.Abs(output)
			slog.Info("History exported", "format", f, "path", absPath, "bytes", buf.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv, json, yaml, parquet)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default qr_generation_log.<format>)")

	return cmd
}
