package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-screener/internal/models"
)

func TestExtractJSONPlainObject(t *testing.T) {
	out := extractJSON(`{"full_name":"Ada"}`)
	assert.Equal(t, models.JSONPayload(`{"full_name":"Ada"}`), out)
}

func TestExtractJSONMarkdownFenced(t *testing.T) {
	out := extractJSON("Here is the result:\n```json\n{\"full_name\":\"Ada\"}\n```\nDone.")
	assert.Equal(t, models.JSONPayload(`{"full_name":"Ada"}`), out)
}

func TestExtractJSONSurroundingCommentary(t *testing.T) {
	out := extractJSON(`Sure! {"overall_score": 7.5} hope that helps`)
	assert.Equal(t, models.JSONPayload(`{"overall_score": 7.5}`), out)
}

func TestExtractJSONArray(t *testing.T) {
	out := extractJSON("```\n[1, 2, 3]\n```")
	assert.Equal(t, models.JSONPayload(`[1, 2, 3]`), out)
}
