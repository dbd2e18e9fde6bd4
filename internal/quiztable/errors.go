package quiztable

import "fmt"

// Kind classifies why a whole response could not be turned into a table.
type Kind int

const (
	// KindDecode means the response is not valid JSON.
	KindDecode Kind = iota + 1
	// KindMissingField means no entry carried the question field.
	KindMissingField
	// KindUnexpected covers valid JSON of the wrong shape.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindMissingField:
		return "missing_field"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseError is the error half of Parse's result. Message is meant for humans.
type ParseError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func decodeError(err error) *ParseError {
	return &ParseError{Kind: KindDecode, Message: "Invalid JSON format.", Err: err}
}

func missingFieldError(field string) *ParseError {
	return &ParseError{Kind: KindMissingField, Message: fmt.Sprintf("Missing expected key in quiz data: '%s'", field)}
}

func unexpectedError(err error) *ParseError {
	return &ParseError{Kind: KindUnexpected, Message: fmt.Sprintf("An unexpected error occurred: %v", err), Err: err}
}
