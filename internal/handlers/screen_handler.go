package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type ScreenHandler struct {
	processor   services.ResumeProcessor
	maxFileSize int64
}

func NewScreenHandler(processor services.ResumeProcessor, maxFileSize int64) *ScreenHandler {
	return &ScreenHandler{
		processor:   processor,
		maxFileSize: maxFileSize,
	}
}

// HandleScreen handles POST /api/screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	fileBytes, filename, err := readUploadedFile(c, h.maxFileSize)
	if err != nil {
		return clientError(c, err.Error())
	}

	jobTitle := c.FormValue("job_title")
	jobDescription := c.FormValue("job_description")
	if jobTitle == "" || jobDescription == "" {
		return clientError(c, "job_title and job_description are required")
	}

	weights, err := parseWeights(c.FormValue("weights"))
	if err != nil {
		return clientError(c, err.Error())
	}

	outcome, err := h.processor.ScreenResume(c.UserContext(), fileBytes, filename, jobTitle, jobDescription, weights)
	if err != nil {
		return processingError(c, err)
	}

	return c.JSON(models.ScreenResponse{
		Success: true,
		Data: models.ScreenData{
			Parsed:   outcome.Parsed,
			Screened: outcome.Screened,
		},
		CacheStatus: models.CacheStatus{
			ParsedCached:    outcome.ParsedCached,
			ScreeningCached: outcome.ScreeningCached,
			FileHash:        outcome.FileHash,
		},
	})
}

// parseWeights decodes and validates the optional weights form field. A nil
// map means "use defaults".
func parseWeights(raw string) (map[string]float64, error) {
	if raw == "" {
		return nil, nil
	}

	var weights map[string]float64
	if err := json.Unmarshal([]byte(raw), &weights); err != nil {
		return nil, fmt.Errorf("weights must be a JSON object mapping category to number")
	}

	return services.NormalizeWeights(weights)
}
