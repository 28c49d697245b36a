package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"solana-token-info/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the config file location and RPC endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "RPC URL: %s\n", cfg.RPCURL)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-rpc-url <url>",
		Short: "Persist a new Solana RPC endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid value %q for '<url>': expected an http(s) URL", args[0])
			}

			path, err := configPath(flags)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.RPCURL = args[0]
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "RPC URL set to %s\n", cfg.RPCURL)
			return nil
		},
	})

	return cmd
}
