// Package config loads the claimlens configuration from a TOML file
// with environment-variable overrides for credentials.
//
// The file lives at ~/.claimlens/config.toml by default. A missing file
// is not an error: defaults apply and API keys can come entirely from
// the environment. Validation fails fast so a misconfigured pipeline
// never gets as far as calling a provider.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// Provider names accepted in [embedding] and [llm] sections.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default configuration values.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
	DefaultExpansions   = 3
)

// Config is the full claimlens configuration.
type Config struct {
	Embedding ProviderConfig  `toml:"embedding"`
	LLM       ProviderConfig  `toml:"llm"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Storage   StorageConfig   `toml:"storage"`
	Prompts   PromptsConfig   `toml:"prompts"`
}

// ProviderConfig configures one AI provider connection.
type ProviderConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
}

// ChunkingConfig configures document splitting.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig configures query expansion and search.
type RetrievalConfig struct {
	// TopK is the number of chunks returned per query.
	TopK int `toml:"top_k"`

	// Expansions is the number of paraphrases requested on top of the
	// original query.
	Expansions int `toml:"expansions"`
}

// StorageConfig configures bundle persistence.
type StorageConfig struct {
	// BundlePath is the knowledge-base bundle file. Empty means the
	// store default (~/.claimlens/data/knowledge.db).
	BundlePath string `toml:"bundle_path"`
}

// PromptsConfig configures prompt template loading.
type PromptsConfig struct {
	// Dir holds user-editable prompt files. Empty means the store
	// default (~/.claimlens/prompts).
	Dir string `toml:"dir"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".claimlens", "config.toml"), nil
}

// Load reads configuration from path, applies defaults and environment
// overrides, and validates the result. An empty path uses DefaultPath;
// a missing file yields a default config.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrConfig, path, err)
		}
	case os.IsNotExist(err):
		// No file is fine; defaults and env apply.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderGemini
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.Chunking.Size == 0 {
		c.Chunking.Size = DefaultChunkSize
	}
	if c.Chunking.Overlap == 0 {
		c.Chunking.Overlap = DefaultChunkOverlap
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Retrieval.Expansions == 0 {
		c.Retrieval.Expansions = DefaultExpansions
	}
}

// applyEnv overlays credentials from the environment. Environment
// variables win over the file so keys can stay out of it entirely.
func (c *Config) applyEnv() {
	overlayKey(&c.Embedding, "CLAIMLENS_EMBEDDING_API_KEY")
	overlayKey(&c.LLM, "CLAIMLENS_LLM_API_KEY")

	// Provider-conventional variables as a fallback.
	for _, p := range []*ProviderConfig{&c.Embedding, &c.LLM} {
		if p.APIKey != "" {
			continue
		}
		switch p.Provider {
		case ProviderOpenAI:
			p.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			p.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

func overlayKey(p *ProviderConfig, envVar string) {
	if v := os.Getenv(envVar); v != "" {
		p.APIKey = v
	}
}

// Validate checks the configuration for inconsistencies that would
// surface later as provider or chunker failures.
func (c *Config) Validate() error {
	for section, p := range map[string]*ProviderConfig{"embedding": &c.Embedding, "llm": &c.LLM} {
		switch p.Provider {
		case ProviderOpenAI, ProviderGemini:
		default:
			return fmt.Errorf("%w: [%s] unknown provider %q", domain.ErrConfig, section, p.Provider)
		}
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("%w: [chunking] size must be positive, got %d", domain.ErrConfig, c.Chunking.Size)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("%w: [chunking] overlap %d must be in [0, size)", domain.ErrConfig, c.Chunking.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: [retrieval] top_k must be positive, got %d", domain.ErrConfig, c.Retrieval.TopK)
	}
	if c.Retrieval.Expansions < 0 {
		return fmt.Errorf("%w: [retrieval] expansions must not be negative, got %d", domain.ErrConfig, c.Retrieval.Expansions)
	}
	return nil
}
