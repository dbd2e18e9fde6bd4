package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Document errors
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodePDFRead           ErrorCode = "PDF_READ_ERROR"
	CodeTextDecode        ErrorCode = "TEXT_DECODE_ERROR"

	// Generation errors
	CodeModelInvocation ErrorCode = "MODEL_INVOCATION_ERROR"
	CodeJSONDecode      ErrorCode = "JSON_DECODE_ERROR"
	CodeUnexpected      ErrorCode = "UNEXPECTED_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a key/value pair that is surfaced in API error details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinel values for errors.Is checks; only the code is compared.
var (
	ErrUnsupportedFormat = &DomainError{Code: CodeUnsupportedFormat}
	ErrPDFRead           = &DomainError{Code: CodePDFRead}
	ErrTextDecode        = &DomainError{Code: CodeTextDecode}
	ErrModelInvocation   = &DomainError{Code: CodeModelInvocation}
	ErrJSONDecode        = &DomainError{Code: CodeJSONDecode}
	ErrMissingField      = &DomainError{Code: CodeMissingField}
	ErrUnexpected        = &DomainError{Code: CodeUnexpected}
)

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnsupportedFormatError(filename string) *DomainError {
	return NewError(CodeUnsupportedFormat, "unsupported file format: only pdf and text files are supported", nil).
		WithContext("filename", filename)
}

func NewPDFReadError(err error) *DomainError {
	return NewError(CodePDFRead, "error reading the PDF file", err)
}

func NewTextDecodeError(err error) *DomainError {
	return NewError(CodeTextDecode, "the text file is not valid UTF-8", err)
}

func NewModelInvocationError(err error) *DomainError {
	return NewError(CodeModelInvocation, "failed to generate the quiz with the language model", err)
}

func NewJSONDecodeError(message string, err error) *DomainError {
	return NewError(CodeJSONDecode, message, err)
}

func NewMissingFieldError(message string) *DomainError {
	return NewError(CodeMissingField, message, nil)
}

func NewUnexpectedError(message string, err error) *DomainError {
	return NewError(CodeUnexpected, message, err)
}

// UserMessage converts any error produced by a submission into the single
// human-readable line shown by the web form.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs.Error()
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "An error occurred while generating MCQs."
}
