package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type ParseHandler struct {
	processor   services.ResumeProcessor
	maxFileSize int64
}

func NewParseHandler(processor services.ResumeProcessor, maxFileSize int64) *ParseHandler {
	return &ParseHandler{
		processor:   processor,
		maxFileSize: maxFileSize,
	}
}

// HandleParse handles POST /api/parse
func (h *ParseHandler) HandleParse(c *fiber.Ctx) error {
	fileBytes, filename, err := readUploadedFile(c, h.maxFileSize)
	if err != nil {
		return clientError(c, err.Error())
	}

	outcome, err := h.processor.ParseResume(c.UserContext(), fileBytes, filename)
	if err != nil {
		return processingError(c, err)
	}

	return c.JSON(models.ParseResponse{
		Success:  true,
		Data:     outcome.Parsed,
		Cached:   outcome.Cached,
		FileHash: outcome.FileHash,
	})
}

// readUploadedFile validates the multipart file field and returns its bytes.
// All rejections here are client errors raised before any core logic runs.
func readUploadedFile(c *fiber.Ctx, maxFileSize int64) ([]byte, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("No file provided")
	}

	if file.Filename == "" {
		return nil, "", fmt.Errorf("No file selected")
	}

	if !services.AllowedExtension(file.Filename) {
		return nil, "", fmt.Errorf("Invalid file format. Only PDF and DOCX are supported")
	}

	if file.Size > maxFileSize {
		return nil, "", fmt.Errorf("File too large. Max size: %d bytes", maxFileSize)
	}

	fileBytes, err := readAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to read uploaded file")
	}

	return fileBytes, file.Filename, nil
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

func clientError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func processingError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
