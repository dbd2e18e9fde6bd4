package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"mcqgen/internal/domain"
	"mcqgen/internal/dto"
)

const (
	MinQuestionCount = 3
	MaxQuestionCount = 20
	MaxSubjectLength = 50
	MaxToneLength    = 20
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest checks the form fields and returns the parsed
// question count. All field errors are reported together.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateRequest) (int, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	if req.Document == nil || req.Document.Filename == "" {
		errors = append(errors, domain.NewMissingFieldValidationError("file"))
	}

	count, countErr := v.ValidateQuestionCount(req.QuestionCount)
	if countErr != nil {
		errors = append(errors, *countErr)
	}

	errors = append(errors, validateText("subject", req.Subject, MaxSubjectLength)...)
	errors = append(errors, validateText("tone", req.Tone, MaxToneLength)...)

	return count, errors
}

// ValidateQuestionCount parses the count and checks it is within range.
func (v *Validator) ValidateQuestionCount(raw string) (int, *domain.ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		err := domain.NewMissingFieldValidationError("mcq_count")
		return 0, &err
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		vErr := domain.NewInvalidFormatError("mcq_count", raw)
		return 0, &vErr
	}
	if count < MinQuestionCount || count > MaxQuestionCount {
		vErr := domain.NewOutOfRangeError("mcq_count", count, MinQuestionCount, MaxQuestionCount)
		return 0, &vErr
	}
	return count, nil
}

func validateText(field, value string, maxLen int) domain.ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldValidationError(field)}
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		return domain.ValidationErrors{domain.NewTooLongError(field, n, maxLen)}
	}
	return nil
}
