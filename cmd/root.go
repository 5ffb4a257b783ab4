package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/barcoder/internal/api"
	"github.com/lehigh-university-libraries/barcoder/internal/config"
	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags and the resolved config to
// every subcommand.
type rootOptions struct {
	configPath string
	apiURL     string
	timeout    time.Duration
	verbose    bool

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "barcoder",
		Short: "Front-end for a QR and barcode generation service",
		Long: `Barcoder lets you pick a barcode or QR symbology, submit data to encode,
and browse or export the history of past generations.

Encoding happens in an external generation service reached over HTTP.
Point barcoder at it with --api-url, BARCODER_API_URL or a config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Generation service base URL (default "+config.DefaultAPIURL+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout (default 30s)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newTypesCmd())
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newLogsCmd(opts))
	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func (o *rootOptions) resolve(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	slog.Debug("Configuration resolved", "api_url", cfg.APIURL, "timeout", cfg.Timeout)
	return nil
}

func (o *rootOptions) client() *api.Client {
	return api.NewClient(o.cfg.APIURL, o.cfg.Timeout)
}
