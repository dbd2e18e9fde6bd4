// Package quiztable turns the model's quiz reply into rows for display.
package quiztable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"mcqgen/internal/domain"
)

const (
	QuestionField = "mcq"
	OptionsField  = "options"
	CorrectField  = "correct"

	// ChoiceSeparator joins the "label -> text" pairs of one question.
	ChoiceSeparator = " || "
)

// Table is the successful result of Parse. It may be empty.
type Table struct {
	Rows    []domain.QuizRow
	Skipped []domain.SkippedEntry
}

// Empty reports whether no row could be built.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// RequireRows returns a KindMissingField error when entries existed but none
// of them carried the question field. An empty object is not an error.
func (t *Table) RequireRows() error {
	if !t.Empty() || len(t.Skipped) == 0 {
		return nil
	}
	for _, s := range t.Skipped {
		if s.Reason != domain.CodeMissingField {
			return nil
		}
	}
	return missingFieldError(QuestionField)
}

// Parse decodes raw as a JSON object of quiz entries and builds one row per
// well-formed entry, in key order. Malformed entries are skipped and listed
// in Table.Skipped. The returned error is always a *ParseError.
func Parse(raw string) (*Table, error) {
	data := []byte(raw)
	if !json.Valid(data) {
		var v any
		return nil, decodeError(json.Unmarshal(data, &v))
	}

	entries, err := decodeObject(data)
	if err != nil {
		return nil, unexpectedError(err)
	}

	table := &Table{Rows: make([]domain.QuizRow, 0, len(entries))}
	for _, entry := range entries {
		row, skip := buildRow(entry)
		if skip != nil {
			table.Skipped = append(table.Skipped, *skip)
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func buildRow(entry member) (domain.QuizRow, *domain.SkippedEntry) {
	if !isObject(entry.Value) {
		return domain.QuizRow{}, &domain.SkippedEntry{
			Key:    entry.Key,
			Reason: domain.CodeInvalidFormat,
			Detail: "value is not an object",
		}
	}

	fields, err := decodeObject(entry.Value)
	if err != nil {
		return domain.QuizRow{}, &domain.SkippedEntry{Key: entry.Key, Reason: domain.CodeInvalidFormat, Detail: err.Error()}
	}

	var (
		question, correct json.RawMessage
		options           json.RawMessage
		hasQuestion       bool
	)
	for _, f := range fields {
		switch f.Key {
		case QuestionField:
			question, hasQuestion = f.Value, true
		case OptionsField:
			options = f.Value
		case CorrectField:
			correct = f.Value
		}
	}
	if !hasQuestion {
		return domain.QuizRow{}, &domain.SkippedEntry{
			Key:    entry.Key,
			Reason: domain.CodeMissingField,
			Detail: fmt.Sprintf("missing %q", QuestionField),
		}
	}

	choices, err := formatChoices(options)
	if err != nil {
		return domain.QuizRow{}, &domain.SkippedEntry{Key: entry.Key, Reason: domain.CodeInvalidFormat, Detail: err.Error()}
	}

	return domain.QuizRow{
		MCQ:     scalarText(question),
		Choices: choices,
		Correct: scalarText(correct),
	}, nil
}

func formatChoices(options json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(options)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if !isObject(trimmed) {
		return "", fmt.Errorf("%q is not an object", OptionsField)
	}
	pairs, err := decodeObject(trimmed)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Key+" -> "+scalarText(p.Value))
	}
	return strings.Join(parts, ChoiceSeparator), nil
}
