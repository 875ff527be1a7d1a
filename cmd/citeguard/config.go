// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeguard/internal/document"
	"github.com/pdiddy/citeguard/internal/similarity"
	"github.com/pdiddy/citeguard/pkg/types"
)

const envPrefix = "CITEGUARD"

// setDefaults registers every config key so environment variables are
// honored for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("similarity.high_threshold", similarity.DefaultHighThreshold)
	v.SetDefault("similarity.provider_timeout", 30*time.Second)
	v.SetDefault("similarity.workers", 0)

	v.SetDefault("embedding.enabled", false)
	v.SetDefault("embedding.base_url", "http://localhost:11434/v1")
	v.SetDefault("embedding.model", "all-minilm")
	v.SetDefault("embedding.api_key", "")

	v.SetDefault("paraphrase.enabled", false)
	v.SetDefault("paraphrase.base_url", "http://localhost:11434/v1")
	v.SetDefault("paraphrase.model", "llama3.2")
	v.SetDefault("paraphrase.api_key", "")
	v.SetDefault("paraphrase.style", "standard")

	v.SetDefault("library.dir", defaultLibraryDir())
	v.SetDefault("library.max_results", 20)

	v.SetDefault("resolve.timeout", 30*time.Second)
	v.SetDefault("resolve.user_agent", "citeguard/"+version)
	v.SetDefault("resolve.mailto", "")
	v.SetDefault("resolve.requests_per_second", 1.0)

	v.SetDefault("document.max_length", document.DefaultMaxLength)
	v.SetDefault("document.converter_image", document.DefaultImage)
}

func defaultLibraryDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "citeguard", "library")
	}
	return filepath.Join(".citeguard", "library")
}

// loadConfig reads the config file (explicit path, ./citeguard.yaml, or
// ~/.config/citeguard/citeguard.yaml) and the CITEGUARD_* environment.
// A missing config file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) (types.Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("citeguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "citeguard"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Config prints the configuration after merging defaults, the config
file, CITEGUARD_* environment variables, and .secrets/. API keys are
redacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := cfg
		if shown.Embedding.APIKey != "" {
			shown.Embedding.APIKey = "<redacted>"
		}
		if shown.Paraphrase.APIKey != "" {
			shown.Paraphrase.APIKey = "<redacted>"
		}
		if used := viperInstance.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(shown); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
