package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"solana-token-info/internal/config"
	"solana-token-info/internal/dns"
	"solana-token-info/internal/observability"
	"solana-token-info/internal/offchain"
	"solana-token-info/internal/orchestrator"
	"solana-token-info/internal/reporting"
	"solana-token-info/internal/solana"
	"solana-token-info/internal/token"
)

// rootFlags holds flags shared by every command.
type rootFlags struct {
	configPath  string
	format      string
	metricsFile string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tokeninfo <TOKEN_ADDRESS>",
		Short: "Fetch on/off chain token details",
		Long: `tokeninfo prints what is known about a Solana SPL token.

It reads the mint account and its Metaplex metadata account from the
configured RPC endpoint, downloads the off-chain JSON document the metadata
points to, and counts the DNS IP records of the token website.`,
		Args:          validateTokenAddress,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			return runLookup(cmd, flags, mint)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <user config dir>/solana_token_cli/default-config.yml)")
	cmd.Flags().StringVar(&flags.format, "format", string(reporting.FormatText), `output format: "text" or "markdown"`)
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging on stderr")

	cmd.AddCommand(newConfigCmd(flags))
	return cmd
}

// validateTokenAddress rejects anything but a single base58 public key
// before any network call is made.
func validateTokenAddress(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one <TOKEN_ADDRESS>, got %d arguments", len(args))
	}
	if _, err := solana.PublicKeyFromBase58(args[0]); err != nil {
		return fmt.Errorf("invalid value %q for '<TOKEN_ADDRESS>': %w", args[0], err)
	}
	return nil
}

func runLookup(cmd *cobra.Command, flags *rootFlags, mint solana.PublicKey) error {
	format := reporting.Format(flags.format)
	if format != reporting.FormatText && format != reporting.FormatMarkdown {
		return fmt.Errorf("unknown output format %q", flags.format)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)
	metrics := observability.NewMetrics("")

	rpc := solana.NewHTTPClient(cfg.RPCURL, solana.WithRequestObserver(metrics.ObserveRPC))
	orch := orchestrator.New(orchestrator.Options{
		Reader:  token.NewReader(rpc),
		Fetcher: offchain.NewFetcher(nil),
		Counter: dns.NewCounter(nil),
		Metrics: metrics,
		Logger:  logger,
	})

	logger.WithField("rpc_url", rpc.Endpoint()).Debug("Starting token lookup")

	stopSpinner := startSpinner(cmd.ErrOrStderr(), "Fetching token data")
	report, err := orch.Run(cmd.Context(), mint)
	stopSpinner()

	if flags.metricsFile != "" {
		if werr := metrics.WriteTextfile(flags.metricsFile); werr != nil {
			logger.WithError(werr).Warn("Failed to write metrics file")
		}
	}
	if err != nil {
		return err
	}

	out, err := reporting.Render(report, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	path, err := configPath(flags)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func configPath(flags *rootFlags) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.DefaultPath()
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// startSpinner animates msg on out and returns a stop function. Outside a
// terminal it does nothing, so redirected stderr stays clean.
func startSpinner(out io.Writer, msg string) func() {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
