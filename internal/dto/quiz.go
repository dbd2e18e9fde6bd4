package dto

import "mcqgen/internal/domain"

// GenerateRequest is one form submission.
// @Description Multipart form fields for quiz generation
type GenerateRequest struct {
	RequestID     string                   `json:"-"`
	Document      *domain.UploadedDocument `json:"-"`
	QuestionCount string                   `json:"mcq_count" form:"mcq_count"`
	Subject       string                   `json:"subject" form:"subject"`
	Tone          string                   `json:"tone" form:"tone"`
}

// GenerateResponse is the parsed quiz plus the model's review.
// @Description Generated quiz table, review and token usage
type GenerateResponse struct {
	RequestID string                `json:"request_id"`
	Subject   string                `json:"subject"`
	Rows      []domain.QuizRow      `json:"rows"`
	Skipped   []domain.SkippedEntry `json:"skipped,omitempty"`
	Review    string                `json:"review"`
	RawQuiz   string                `json:"raw_quiz"`
	Usage     domain.TokenUsage     `json:"usage"`
	Empty     bool                  `json:"empty"`
}

// HealthResponse is returned by the liveness endpoint. Cache is one of
// "ok", "unavailable" or "disabled"; Status is "degraded" when the cache
// is configured but does not answer.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Cache    string `json:"cache"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
