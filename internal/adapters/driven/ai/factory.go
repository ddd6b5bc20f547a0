// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/clearbrook-labs/claimlens/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/clearbrook-labs/claimlens/internal/adapters/driven/embedding/openai"
	geminillm "github.com/clearbrook-labs/claimlens/internal/adapters/driven/llm/gemini"
	openaillm "github.com/clearbrook-labs/claimlens/internal/adapters/driven/llm/openai"
	"github.com/clearbrook-labs/claimlens/internal/config"
	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service named by the
// provider configuration.
func CreateEmbeddingService(cfg config.ProviderConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case config.ProviderGemini:
		return geminiembed.NewEmbeddingService(geminiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrConfig, cfg.Provider)
	}
}

// CreateLLMService creates the LLM service named by the provider
// configuration.
func CreateLLMService(cfg config.ProviderConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	case config.ProviderGemini:
		return geminillm.NewLLMService(geminillm.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrConfig, cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity with a bounded ping.
func CreateAndValidateEmbeddingService(cfg config.ProviderConfig) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: embedding service unreachable: %v", domain.ErrEmbeddingService, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity with a bounded ping.
func CreateAndValidateLLMService(cfg config.ProviderConfig) (driven.LLMService, error) {
	svc, err := CreateLLMService(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: LLM service unreachable: %v", domain.ErrGenerationService, err)
	}
	return svc, nil
}
