package validation

import (
	"bytes"
	"strings"
	"testing"

	"mcqgen/internal/domain"
	"mcqgen/internal/dto"

	"github.com/stretchr/testify/assert"
)

func validRequest() *dto.GenerateRequest {
	return &dto.GenerateRequest{
		Document: &domain.UploadedDocument{
			Filename: "notes.txt",
			Size:     5,
			Body:     bytes.NewReader([]byte("hello")),
		},
		QuestionCount: "5",
		Subject:       "Physics",
		Tone:          "easy",
	}
}

func TestValidateGenerateRequest_Valid(t *testing.T) {
	count, errs := NewValidator().ValidateGenerateRequest(validRequest())
	assert.Empty(t, errs)
	assert.Equal(t, 5, count)
}

func TestValidateGenerateRequest_Fields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *dto.GenerateRequest)
		wantField string
		wantCode  domain.ErrorCode
	}{
		{"missing file", func(r *dto.GenerateRequest) { r.Document = nil }, "file", domain.CodeMissingField},
		{"missing count", func(r *dto.GenerateRequest) { r.QuestionCount = " " }, "mcq_count", domain.CodeMissingField},
		{"count not a number", func(r *dto.GenerateRequest) { r.QuestionCount = "five" }, "mcq_count", domain.CodeInvalidFormat},
		{"count below range", func(r *dto.GenerateRequest) { r.QuestionCount = "2" }, "mcq_count", domain.CodeOutOfRange},
		{"count above range", func(r *dto.GenerateRequest) { r.QuestionCount = "21" }, "mcq_count", domain.CodeOutOfRange},
		{"missing subject", func(r *dto.GenerateRequest) { r.Subject = "" }, "subject", domain.CodeMissingField},
		{"subject too long", func(r *dto.GenerateRequest) { r.Subject = strings.Repeat("s", 51) }, "subject", domain.CodeOutOfRange},
		{"missing tone", func(r *dto.GenerateRequest) { r.Tone = "\t" }, "tone", domain.CodeMissingField},
		{"tone too long", func(r *dto.GenerateRequest) { r.Tone = strings.Repeat("t", 21) }, "tone", domain.CodeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, errs := NewValidator().ValidateGenerateRequest(req)
			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.wantField, errs[0].Field)
				assert.Equal(t, tt.wantCode, errs[0].Code)
			}
		})
	}
}

func TestValidateGenerateRequest_Boundaries(t *testing.T) {
	req := validRequest()
	req.QuestionCount = "3"
	req.Subject = strings.Repeat("é", 50)
	req.Tone = strings.Repeat("ü", 20)
	count, errs := NewValidator().ValidateGenerateRequest(req)
	assert.Empty(t, errs)
	assert.Equal(t, 3, count)

	req.QuestionCount = "20"
	count, errs = NewValidator().ValidateGenerateRequest(req)
	assert.Empty(t, errs)
	assert.Equal(t, 20, count)
}

func TestValidateGenerateRequest_CollectsAllErrors(t *testing.T) {
	_, errs := NewValidator().ValidateGenerateRequest(&dto.GenerateRequest{})
	assert.Len(t, errs, 4)
	assert.Contains(t, errs.Error(), "file is required")
}
