// Package view renders the HTML form and its result.
package view

import (
	"bytes"
	"embed"
	"html/template"

	"mcqgen/internal/dto"
	"mcqgen/internal/validation"
)

//go:embed templates/*.html
var files embed.FS

// FormValues echoes the submitted fields back into the form.
type FormValues struct {
	QuestionCount string
	Subject       string
	Tone          string
}

// Page is everything the index template shows. At most one of Error and
// Result is set.
type Page struct {
	Form       FormValues
	Error      string
	Result     *dto.GenerateResponse
	MinCount   int
	MaxCount   int
	MaxSubject int
	MaxTone    int
}

// Renderer holds the parsed templates. It is safe for concurrent use.
type Renderer struct {
	index *template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	index, err := template.New("index.html").Funcs(funcs).ParseFS(files, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{index: index}, nil
}

// Index renders the form page.
func (r *Renderer) Index(page Page) ([]byte, error) {
	page.MinCount = validation.MinQuestionCount
	page.MaxCount = validation.MaxQuestionCount
	page.MaxSubject = validation.MaxSubjectLength
	page.MaxTone = validation.MaxToneLength
	if page.Form.QuestionCount == "" {
		page.Form.QuestionCount = "5"
	}

	var buf bytes.Buffer
	if err := r.index.Execute(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
