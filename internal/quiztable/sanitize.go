package quiztable

import (
	"encoding/json"
	"strings"
)

// Sanitize strips what chat models commonly wrap around a JSON answer:
// <think> blocks, Markdown code fences and prose before or after the
// outermost object. Input without a '{'...'}' pair is returned trimmed so
// that Parse reports it as a decode error.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			s = s[:start] + afterUnclosedThink(s[start+len("<think>"):])
			break
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
	s = strings.TrimSpace(s)

	if fence := strings.Index(s, "```"); fence != -1 {
		body := s[fence+3:]
		if nl := strings.IndexByte(body, '\n'); nl != -1 {
			// drop the language tag, e.g. ```json
			body = body[nl+1:]
		}
		if closing := strings.LastIndex(body, "```"); closing != -1 {
			body = body[:closing]
		}
		s = strings.TrimSpace(body)
	}

	open := strings.Index(s, "{")
	closing := strings.LastIndex(s, "}")
	if open != -1 && closing > open {
		return s[open : closing+1]
	}
	return s
}

// afterUnclosedThink returns the answer that follows a <think> block whose
// closing tag was cut off: the first '{' from which the text up to the last
// '}' is valid JSON, else everything from the first '{'. Braces inside the
// reasoning are skipped that way. Without any '{' nothing is kept.
func afterUnclosedThink(rest string) string {
	closing := strings.LastIndex(rest, "}")
	for i := 0; i < len(rest); i++ {
		if rest[i] != '{' {
			continue
		}
		if closing > i && json.Valid([]byte(rest[i:closing+1])) {
			return rest[i : closing+1]
		}
	}
	if open := strings.Index(rest, "{"); open != -1 {
		return rest[open:]
	}
	return ""
}
