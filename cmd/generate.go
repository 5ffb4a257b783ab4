package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/barcoder/internal/form"
	"github.com/lehigh-university-libraries/barcoder/internal/history"
	"github.com/lehigh-university-libraries/barcoder/internal/session"
	"github.com/lehigh-university-libraries/barcoder/internal/symbology"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var codeType string
	var data string
	var label string
	var saveDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a QR code or barcode",
		Long: `Validates the input against the chosen type's limits, sends it to the
generation service and prints the resulting log entry.

Use --save to download the generated image into a directory.`,
		Example: `  # Generate a Code128 barcode
  barcoder generate --type Code128 --data "PRODUCT-123"

  # Generate a labelled QR code and save the image
  barcoder generate --type QR_Model_2 --data https://example.com --label Home --save ./codes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := form.Validate(codeType, data, label)
			if err != nil {
				return err
			}

			client := opts.client()
			sess := session.New(client)
			resp, err := sess.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := history.RenderLatest(cmd.OutOrStdout(), resp.Log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History now holds %d generation(s)\n", len(sess.Logs()))

			if saveDir == "" {
				return nil
			}

			image, err := client.DownloadImage(cmd.Context(), resp.ImageURL)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(saveDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			path := filepath.Join(saveDir, filepath.Base(resp.Log.Filename))
			if err := os.WriteFile(path, image, 0644); err != nil {
				return fmt.Errorf("failed to save image: %w", err)
			}
			slog.Info("Image saved", "path", path, "bytes", len(image))
			return nil
		},
	}

	cmd.Flags().StringVarP(&codeType, "type", "t", "", "Code type id ("+strings.Join(symbology.IDs(), ", ")+")")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Data to encode")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Optional label printed under the code")
	cmd.Flags().StringVar(&saveDir, "save", "", "Directory to download the generated image into")

	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return symbology.IDs(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
