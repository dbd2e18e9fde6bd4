package chain

import "github.com/tmc/langchaingo/prompts"

const (
	keyText         = "text"
	keyNumber       = "number"
	keySubject      = "subject"
	keyTone         = "tone"
	keyResponseJSON = "response_json"
	keyQuiz         = "quiz"
	keyReview       = "review"
)

const quizGenerationTemplate = `Text: {{.text}}
You are an expert MCQ maker. Given the above text, it is your job to create a quiz of {{.number}} multiple choice questions for {{.subject}} students in {{.tone}} tone.
Make sure the questions are not repeated and check all the questions to conform to the text as well.
Make sure to format your response like the RESPONSE_JSON below and use it as a guide. Ensure to make {{.number}} MCQs.
### RESPONSE_JSON
{{.response_json}}
`

const quizEvaluationTemplate = `You are an expert English grammarian and writer. Given a Multiple Choice Quiz for {{.subject}} students, you need to evaluate the complexity of the question and give a complete analysis of the quiz. Use at most 50 words for complexity analysis.
If the quiz is not up to par with the cognitive and analytical abilities of the students, update the quiz questions which need to be changed, and change the tone such that it perfectly fits the student abilities.
Quiz_MCQs:
{{.quiz}}
Check from an expert English writer of the above quiz:
`

func generationPrompt() prompts.PromptTemplate {
	return prompts.NewPromptTemplate(quizGenerationTemplate,
		[]string{keyText, keyNumber, keySubject, keyTone, keyResponseJSON})
}

func evaluationPrompt() prompts.PromptTemplate {
	return prompts.NewPromptTemplate(quizEvaluationTemplate, []string{keySubject, keyQuiz})
}
