package chain

import (
	"context"

	"mcqgen/internal/config"
	"mcqgen/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// meteredModel counts the tokens reported by each generation. One instance
// lives for exactly one submission, whose calls are sequential.
type meteredModel struct {
	llms.Model
	prompt     int
	completion int
	total      int
	calls      int
}

func newMeteredModel(model llms.Model) *meteredModel {
	return &meteredModel{Model: model}
}

func (m *meteredModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	resp, err := m.Model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, err
	}
	m.calls++
	if len(resp.Choices) > 0 && resp.Choices[0] != nil {
		info := resp.Choices[0].GenerationInfo
		prompt := intValue(info["PromptTokens"])
		completion := intValue(info["CompletionTokens"])
		total := intValue(info["TotalTokens"])
		if total == 0 {
			total = prompt + completion
		}
		m.prompt += prompt
		m.completion += completion
		m.total += total
	}
	return resp, nil
}

// Call routes through GenerateContent so that it is metered too.
func (m *meteredModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Usage prices the counted tokens per 1000.
func (m *meteredModel) Usage(pricing config.PricingConfig) domain.TokenUsage {
	return domain.TokenUsage{
		TotalTokens:      m.total,
		PromptTokens:     m.prompt,
		CompletionTokens: m.completion,
		TotalCost: float64(m.prompt)/1000*pricing.PromptPer1K +
			float64(m.completion)/1000*pricing.CompletionPer1K,
	}
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
