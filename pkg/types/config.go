// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citeguard/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// EmbeddingConfig selects the embedding backend used by the semantic scorer.
// When Enabled is false, or the backend cannot be constructed, the scorer
// runs with the lexical strategy only.
type EmbeddingConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// BaseURL is an OpenAI-compatible API root (e.g. "http://localhost:11434/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the embedding model identifier (e.g. "all-minilm").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against hosted endpoints. Local servers accept any value.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// SimilarityConfig holds scorer settings.
type SimilarityConfig struct {
	// HighThreshold is the semantic score above which the high-similarity
	// warning is issued (default 0.85).
	HighThreshold float64 `json:"high_threshold" yaml:"high_threshold" mapstructure:"high_threshold"`

	// ProviderTimeout bounds each embedding call; a timeout falls back to
	// lexical scoring. Zero disables the bound.
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout" mapstructure:"provider_timeout"`

	// Workers is the pool size for batch scoring (default half the CPUs).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// ParaphraseConfig holds rewriter settings. Without an LLM endpoint the
// local rewriter is used.
type ParaphraseConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model   string `json:"model" yaml:"model" mapstructure:"model"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Style is the default rewrite style: standard, academic, formal, casual, simple.
	Style string `json:"style" yaml:"style" mapstructure:"style"`
}

// LibraryConfig holds settings for the local source library.
type LibraryConfig struct {
	// Dir is the directory holding library.db and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ResolveConfig holds settings for identifier metadata lookup.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MailTo is sent to Crossref to join its polite pool.
	MailTo string `json:"mailto,omitempty" yaml:"mailto,omitempty" mapstructure:"mailto"`

	// RequestsPerSecond caps outgoing metadata requests (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// DocumentConfig holds settings for loading candidate documents.
type DocumentConfig struct {
	// MaxLength is the maximum document length in characters (default 100000).
	MaxLength int `json:"max_length" yaml:"max_length" mapstructure:"max_length"`

	// ConverterImage is the container image used for PDF and DOCX text extraction.
	ConverterImage string `json:"converter_image" yaml:"converter_image" mapstructure:"converter_image"`
}

// Config groups all component configurations.
type Config struct {
	Similarity SimilarityConfig `json:"similarity" yaml:"similarity" mapstructure:"similarity"`
	Embedding  EmbeddingConfig  `json:"embedding" yaml:"embedding" mapstructure:"embedding"`
	Paraphrase ParaphraseConfig `json:"paraphrase" yaml:"paraphrase" mapstructure:"paraphrase"`
	Library    LibraryConfig    `json:"library" yaml:"library" mapstructure:"library"`
	Resolve    ResolveConfig    `json:"resolve" yaml:"resolve" mapstructure:"resolve"`
	Document   DocumentConfig   `json:"document" yaml:"document" mapstructure:"document"`
}
