package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type SimilarHandler struct {
	similarity services.SimilarityService
}

func NewSimilarHandler(similarity services.SimilarityService) *SimilarHandler {
	return &SimilarHandler{similarity: similarity}
}

// HandleSimilar handles GET /api/similar/:file_hash
func (h *SimilarHandler) HandleSimilar(c *fiber.Ctx) error {
	fileHash := c.Params("file_hash")
	if len(fileHash) != 64 {
		return clientError(c, "file_hash must be a 64-character hex fingerprint")
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	matches, err := h.similarity.FindSimilar(c.UserContext(), fileHash, limit)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(models.SimilarResponse{
		Success:  true,
		FileHash: fileHash,
		Matches:  matches,
	})
}
