package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/tidwall/gjson"

	"alfredoptarigan/resume-screener/internal/models"
)

// ResumeScreener is the scoring oracle: a parsed candidate profile plus job
// context in, a structured screening result out. Scoring never sees raw
// document text, only a parsed payload.
type ResumeScreener interface {
	ScreenResume(ctx context.Context, parsed models.JSONPayload, jobTitle, jobDescription string, weights map[string]float64) (models.JSONPayload, error)
}

type resumeScreener struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	model         string
	maxRetries    int
}

func NewResumeScreener(gemini GeminiService, model string, maxRetries int) ResumeScreener {
	return &resumeScreener{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		model:         model,
		maxRetries:    maxRetries,
	}
}

// ScreenResume implements ResumeScreener.
func (s *resumeScreener) ScreenResume(ctx context.Context, parsed models.JSONPayload, jobTitle, jobDescription string, weights map[string]float64) (models.JSONPayload, error) {
	if weights == nil {
		weights = DefaultWeights()
	}

	prompt := s.promptBuilder.BuildScreeningPrompt(
		indentPayload(parsed), jobTitle, jobDescription, weights,
	)

	response, err := s.gemini.GenerateTextWithRetry(ctx, s.model, prompt, 0.2, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to screen resume: %w", err)
	}

	payload := extractJSON(response)
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("screener returned invalid JSON")
	}
	overall := gjson.GetBytes(payload, "overall_score")
	if !overall.Exists() {
		return nil, fmt.Errorf("screener response missing overall_score")
	}

	log.Printf("✅ Resume screened. Overall score: %.1f/10 (%s)",
		overall.Float(), gjson.GetBytes(payload, "recommendation").String())
	return payload, nil
}

func indentPayload(payload models.JSONPayload) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return string(payload)
	}
	return buf.String()
}
