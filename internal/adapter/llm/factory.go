// Package llm builds the langchaingo model the quiz chain talks to.
package llm

import (
	"fmt"
	"net/http"
	"time"

	"mcqgen/internal/config"
	"mcqgen/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// NewModel returns a model for cfg.Provider. The model is created once and
// shared by all submissions; langchaingo clients are safe for concurrent use.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		logger.Get().Info("Initializing OpenAI model", zap.String("model", cfg.Model))
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
		}
		return model, nil
	case ProviderOllama:
		logger.Get().Info("Initializing Ollama model",
			zap.String("server_url", cfg.OllamaURL),
			zap.String("model", cfg.Model))
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
