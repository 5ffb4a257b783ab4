package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTypesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "types [id]",
		Short: "List supported code types",
		Long: `Lists every barcode and QR symbology the generation service accepts,
with supported characters, maximum length and an example input.

Pass an id to show a single type.`,
		Example: `  # Show the full catalog
  barcoder types

  # Show one type as YAML
  barcoder types EAN13 --format yaml`,
		Args: cobra.MaximumNArgs(1),
		// the catalog is static and needs no service configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			types := symbology.All()
			if len(args) == 1 {
				d, ok := symbology.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown code type: %s", args[0])
				}
				types = []symbology.Descriptor{d}
			}

			switch format {
			case "table":
				return printTypesTable(cmd.OutOrStdout(), types)
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(types)
			case "yaml":
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(types)
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, yaml)")

	return cmd
}

func printTypesTable(w io.Writer, types []symbology.Descriptor) error {
	rows := make([][]string, 0, len(types))
	for _, d := range types {
		limit := "-"
		if d.HasMaxLength() {
			limit = fmt.Sprint(d.MaxLength)
		}
		rows = append(rows, []string{d.ID, d.Name, d.Supports, limit, d.Example})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Supports", "Max", "Example").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}
