package llm

import (
	"testing"
	"time"

	"mcqgen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		model, err := NewModel(config.LLMConfig{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo", OpenAIKey: "sk-test", Timeout: time.Second})
		require.NoError(t, err)
		assert.NotNil(t, model)
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := NewModel(config.LLMConfig{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"})
		assert.Error(t, err)
	})

	t.Run("ollama", func(t *testing.T) {
		model, err := NewModel(config.LLMConfig{Provider: ProviderOllama, Model: "qwen3:0.6b", OllamaURL: "http://localhost:11434", Timeout: time.Second})
		require.NoError(t, err)
		assert.NotNil(t, model)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewModel(config.LLMConfig{Provider: "mystery"})
		assert.Error(t, err)
	})
}
