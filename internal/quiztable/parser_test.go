package quiztable

import (
	"errors"
	"testing"

	"mcqgen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleQuestion(t *testing.T) {
	table, err := Parse(`{"1": {"mcq": "2+2?", "options": {"a":"3","b":"4"}, "correct": "b"}}`)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, domain.QuizRow{MCQ: "2+2?", Choices: "a -> 3 || b -> 4", Correct: "b"}, table.Rows[0])
	assert.Empty(t, table.Skipped)
	assert.False(t, table.Empty())
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	raw := `{
		"10": {"mcq": "ten", "options": {"d": "4", "a": "1", "c": "3"}, "correct": "a"},
		"2":  {"mcq": "two", "options": {"b": "2"}, "correct": "b"},
		"1":  {"mcq": "one", "options": {}, "correct": "c"}
	}`

	table, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, "ten", table.Rows[0].MCQ)
	assert.Equal(t, "d -> 4 || a -> 1 || c -> 3", table.Rows[0].Choices)
	assert.Equal(t, "two", table.Rows[1].MCQ)
	assert.Equal(t, "one", table.Rows[2].MCQ)
	assert.Equal(t, "", table.Rows[2].Choices)
}

func TestParse_SkipsMalformedEntries(t *testing.T) {
	raw := `{
		"1": {"mcq": "first", "options": {"a": "x"}, "correct": "a"},
		"2": "just a string",
		"3": {"question": "wrong key", "options": {"a": "x"}, "correct": "a"},
		"4": {"mcq": "bad options", "options": ["a", "b"], "correct": "a"},
		"5": {"mcq": "last", "options": {"a": "y"}, "correct": "a"}
	}`

	table, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "first", table.Rows[0].MCQ)
	assert.Equal(t, "last", table.Rows[1].MCQ)

	require.Len(t, table.Skipped, 3)
	assert.Equal(t, "2", table.Skipped[0].Key)
	assert.Equal(t, domain.CodeInvalidFormat, table.Skipped[0].Reason)
	assert.Equal(t, "3", table.Skipped[1].Key)
	assert.Equal(t, domain.CodeMissingField, table.Skipped[1].Reason)
	assert.Equal(t, "4", table.Skipped[2].Key)
	assert.Equal(t, domain.CodeInvalidFormat, table.Skipped[2].Reason)
}

func TestParse_OptionalFields(t *testing.T) {
	table, err := Parse(`{"q": {"mcq": "no options"}, "r": {"mcq": 42, "options": {"a": 1, "b": true, "c": null}, "correct": null}}`)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, domain.QuizRow{MCQ: "no options"}, table.Rows[0])
	assert.Equal(t, domain.QuizRow{MCQ: "42", Choices: "a -> 1 || b -> true || c -> "}, table.Rows[1])
}

func TestParse_DuplicateKeysLastValueWins(t *testing.T) {
	table, err := Parse(`{"1": {"mcq": "old"}, "2": {"mcq": "other"}, "1": {"mcq": "new"}}`)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "new", table.Rows[0].MCQ)
	assert.Equal(t, "other", table.Rows[1].MCQ)
}

func TestParse_EmptyObjectIsNotAnError(t *testing.T) {
	table, err := Parse("{}")
	require.NoError(t, err)
	assert.True(t, table.Empty())
	assert.Empty(t, table.Rows)
	assert.NoError(t, table.RequireRows())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		wantMsg  string
	}{
		{"not json", "not json", KindDecode, "Invalid JSON format."},
		{"empty input", "", KindDecode, "Invalid JSON format."},
		{"truncated object", `{"1": {"mcq": "x"`, KindDecode, "Invalid JSON format."},
		{"trailing data", `{"1": {"mcq": "x"}} {}`, KindDecode, "Invalid JSON format."},
		{"array", `[{"mcq": "x"}]`, KindUnexpected, ""},
		{"string", `"quiz"`, KindUnexpected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.raw)
			assert.Nil(t, table)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.wantKind, parseErr.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, parseErr.Message)
			} else {
				assert.Contains(t, parseErr.Message, "An unexpected error occurred")
			}
		})
	}
}

func TestTable_RequireRows(t *testing.T) {
	table, err := Parse(`{"1": {"question": "a"}, "2": {"text": "b"}}`)
	require.NoError(t, err)
	assert.True(t, table.Empty())

	err = table.RequireRows()
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, KindMissingField, parseErr.Kind)
	assert.Equal(t, "Missing expected key in quiz data: 'mcq'", parseErr.Message)

	mixed, err := Parse(`{"1": {"question": "a"}, "2": 7}`)
	require.NoError(t, err)
	assert.NoError(t, mixed.RequireRows())
}
