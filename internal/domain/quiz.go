package domain

import "context"

// QuizRow is one line of the rendered quiz table.
type QuizRow struct {
	MCQ     string `json:"mcq"`
	Choices string `json:"choices"`
	Correct string `json:"correct"`
}

// SkippedEntry records a response entry that could not be turned into a row.
type SkippedEntry struct {
	Key    string    `json:"key"`
	Reason ErrorCode `json:"reason"`
	Detail string    `json:"detail"`
}

// TokenUsage is the per-submission usage snapshot reported by the model calls.
type TokenUsage struct {
	TotalTokens      int     `json:"total_tokens"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalCost        float64 `json:"total_cost"`
}

// Add accumulates another usage snapshot into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.TotalTokens += other.TotalTokens
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalCost += other.TotalCost
}

// ChainInput holds everything the generate-then-review chain needs.
type ChainInput struct {
	Text         string
	Number       int
	Subject      string
	Tone         string
	ResponseJSON string
}

// ChainOutput is the raw result of the chain: quiz text, review text and usage.
type ChainOutput struct {
	Quiz   string
	Review string
	Usage  TokenUsage
}

// QuizChain generates a quiz from document text and then reviews it.
type QuizChain interface {
	Generate(ctx context.Context, input ChainInput) (*ChainOutput, error)
}
