// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeguard/internal/document"
	"github.com/pdiddy/citeguard/internal/paraphrase"
)

var paraphraseCmd = &cobra.Command{
	Use:   "paraphrase [text]",
	Short: "Rewrite a passage in another style",
	Long: `Paraphrase rewrites a passage, typically one flagged by analyze. The text
comes from the arguments, --file, or stdin.

Styles: standard (default), academic, formal, casual, simple. An LLM is
used when paraphrase.enabled is set in the config; otherwise, or when the
LLM fails, a local word-substitution rewriter runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		file, _ := cmd.Flags().GetString("file")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		style := cfg.Paraphrase.Style
		if cmd.Flags().Changed("style") {
			style, _ = cmd.Flags().GetString("style")
		}

		var text string
		switch {
		case file != "":
			doc, err := document.NewLoader(cfg.Document, document.WithLogger(logger)).Load(ctx, file)
			if err != nil {
				return err
			}
			text = doc.Text
		case len(args) > 0:
			text = strings.Join(args, " ")
		default:
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		}

		res, err := paraphrase.New(cfg.Paraphrase, logger).Paraphrase(ctx, text, paraphrase.ParseStyle(style))
		if err != nil {
			return fmt.Errorf("paraphrasing failed: %w", err)
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

func init() {
	paraphraseCmd.Flags().String("style", "standard", "standard, academic, formal, casual, or simple")
	paraphraseCmd.Flags().StringP("file", "f", "", "read the passage from a file")
	paraphraseCmd.Flags().Bool("json", false, "output JSON with the method used")
	rootCmd.AddCommand(paraphraseCmd)
}
