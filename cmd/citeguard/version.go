// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeguard/internal/embedding"
	"github.com/pdiddy/citeguard/internal/paraphrase"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and which backends are available",
	Long: `Version prints the citeguard version and whether semantic scoring and LLM
paraphrasing are configured. With --check the embedding endpoint is probed
with a one-text request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "citeguard %s\n", version)

		provider, err := embedding.New(cfg.Embedding, logger)
		switch {
		case err != nil:
			fmt.Fprintf(out, "semantic scoring: unavailable (%v), using word overlap\n", err)
		default:
			fmt.Fprintf(out, "semantic scoring: configured (%s at %s)\n", cfg.Embedding.Model, cfg.Embedding.BaseURL)
			if check, _ := cmd.Flags().GetBool("check"); check {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				if _, err := provider.Embed(ctx, []string{"health check"}); err != nil {
					fmt.Fprintf(out, "embedding endpoint: unreachable (%v)\n", err)
				} else {
					fmt.Fprintln(out, "embedding endpoint: ok")
				}
			}
		}

		if paraphrase.New(cfg.Paraphrase, logger).UsesLLM() {
			fmt.Fprintf(out, "paraphrasing: llm (%s)\n", cfg.Paraphrase.Model)
		} else {
			fmt.Fprintln(out, "paraphrasing: local")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "probe the embedding endpoint")
	rootCmd.AddCommand(versionCmd)
}
