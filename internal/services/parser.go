package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-screener/internal/models"
)

// ResumeParser is the extraction oracle: raw resume text in, structured
// candidate profile out. Slow and metered; callers are expected to cache.
type ResumeParser interface {
	ParseResume(ctx context.Context, resumeText string) (models.JSONPayload, error)
}

type resumeParser struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	model         string
	maxRetries    int
}

func NewResumeParser(gemini GeminiService, model string, maxRetries int) ResumeParser {
	return &resumeParser{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		model:         model,
		maxRetries:    maxRetries,
	}
}

// ParseResume implements ResumeParser.
func (p *resumeParser) ParseResume(ctx context.Context, resumeText string) (models.JSONPayload, error) {
	prompt := p.promptBuilder.BuildParsePrompt(resumeText)

	response, err := p.gemini.GenerateTextWithRetry(ctx, p.model, prompt, 0.1, p.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	payload := extractJSON(response)
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("parser returned invalid JSON")
	}
	if !gjson.GetBytes(payload, "full_name").Exists() {
		return nil, fmt.Errorf("parser response missing full_name")
	}

	log.Printf("✅ Resume parsed successfully (%d bytes)", len(payload))
	return payload, nil
}

// extractJSON pulls the JSON object or array out of a model response that may
// wrap it in markdown fences or commentary.
func extractJSON(text string) models.JSONPayload {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return models.JSONPayload(text[startObj : endObj+1])
	}
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return models.JSONPayload(text[startArr : endArr+1])
	}

	return models.JSONPayload(text)
}
