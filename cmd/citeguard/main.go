// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citeguard CLI: similarity
// analysis against reference sources, citation formatting, a local source
// library, and paraphrasing of flagged passages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/internal/logging"
	"github.com/pdiddy/citeguard/internal/secrets"
	"github.com/pdiddy/citeguard/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Process-wide state built once in PersistentPreRunE.
var (
	cfg           types.Config
	logger        = zap.NewNop()
	viperInstance = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "citeguard",
	Short: "Similarity analysis and citation formatting for academic writing",
	Long: `citeguard checks a document for similarity against reference sources and
formats citations in APA, MLA, Chicago, Harvard, and IEEE.

Similarity uses sentence embeddings when an embedding endpoint is configured
and falls back to word overlap otherwise. Sources can be passed as files or
kept in a local library that also records analysis history.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l

		cfgFile, _ := cmd.Flags().GetString("config")
		c, err := loadConfig(viperInstance, cfgFile)
		if err != nil {
			return err
		}
		if used := viperInstance.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}

		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		secrets.Apply(s, &c)

		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citeguard.yaml or ~/.config/citeguard/citeguard.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (openai-api-key, crossref-email)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
