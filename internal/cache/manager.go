package cache

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/fingerprint"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/repositories"
)

// Manager is the two-level result cache: parsed resumes keyed by document
// fingerprint, screening results keyed by (document, job) fingerprint.
//
// The cache is best-effort on both sides. A store fault on read degrades to a
// miss and a store fault on write is a logged no-op, so an unavailable store
// costs oracle calls, never answers.
type Manager struct {
	parsedRepo    repositories.ParsedResumeRepository
	screeningRepo repositories.ScreeningResultRepository
}

// CompleteResult is a screening row together with its parsed counterpart.
type CompleteResult struct {
	Parsed   models.JSONPayload
	Screened models.JSONPayload
}

func NewManager(
	parsedRepo repositories.ParsedResumeRepository,
	screeningRepo repositories.ScreeningResultRepository,
) *Manager {
	return &Manager{
		parsedRepo:    parsedRepo,
		screeningRepo: screeningRepo,
	}
}

// GetParsedResume returns the cached parsed payload for a document
// fingerprint, or nil on miss.
func (m *Manager) GetParsedResume(fileHash string) models.JSONPayload {
	row, err := m.parsedRepo.FindByFileHash(fileHash)
	if err != nil {
		readFaultAsMiss("parsed resume", fileHash, err)
		return nil
	}

	log.Printf("✓ Cache HIT for parsed resume: %s...", shortKey(fileHash))
	return row.ParsedData
}

// StoreParsedResume writes a parsed payload under its document fingerprint.
// Returns false on store fault; the caller still serves its computed result.
func (m *Manager) StoreParsedResume(fileHash string, payload models.JSONPayload) bool {
	row := &models.ParsedResume{
		FileHash:   fileHash,
		ParsedData: payload,
	}
	if err := m.parsedRepo.Upsert(row); err != nil {
		log.Printf("⚠️  Failed to store parsed resume in cache: %v", err)
		return false
	}

	log.Printf("✓ Stored parsed resume in cache: %s...", shortKey(fileHash))
	return true
}

// GetScreeningResult returns the cached screening payload for a
// (document, job) pair, or nil on miss.
func (m *Manager) GetScreeningResult(fileHash, jobTitle, jobDescription string) models.JSONPayload {
	screeningKey := fingerprint.Screening(fileHash, jobTitle, jobDescription)

	row, err := m.screeningRepo.FindByScreeningKey(screeningKey)
	if err != nil {
		readFaultAsMiss("screening result", screeningKey, err)
		return nil
	}

	log.Printf("✓ Cache HIT for screening: %s...", shortKey(screeningKey))
	return row.ScreeningData
}

// StoreScreeningResult writes a screening payload under its composite key,
// keeping the job text that produced it for auditability.
func (m *Manager) StoreScreeningResult(fileHash, jobTitle, jobDescription string, payload models.JSONPayload) bool {
	screeningKey := fingerprint.Screening(fileHash, jobTitle, jobDescription)

	row := &models.ScreeningResult{
		ScreeningKey:   screeningKey,
		FileHash:       fileHash,
		JobTitle:       jobTitle,
		JobDescription: jobDescription,
		ScreeningData:  payload,
	}
	if err := m.screeningRepo.Upsert(row); err != nil {
		log.Printf("⚠️  Failed to store screening result in cache: %v", err)
		return false
	}

	log.Printf("✓ Stored screening result in cache: %s...", shortKey(screeningKey))
	return true
}

// GetCompleteResult returns both halves of a cached screen outcome, or nil
// unless BOTH the screening row and the parsed row are present. A screening
// row without its parsed counterpart is not a complete hit.
func (m *Manager) GetCompleteResult(fileHash, jobTitle, jobDescription string) *CompleteResult {
	screened := m.GetScreeningResult(fileHash, jobTitle, jobDescription)
	parsed := m.GetParsedResume(fileHash)

	if screened == nil || parsed == nil {
		return nil
	}

	log.Printf("✓ Complete cache HIT for %s...", shortKey(fileHash))
	return &CompleteResult{Parsed: parsed, Screened: screened}
}

// readFaultAsMiss collapses a store read error into a cache miss. Misses are
// expected; anything else is a store fault worth logging, but never worth
// failing the request over.
func readFaultAsMiss(what, key string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("✗ Cache MISS for %s: %s...", what, shortKey(key))
		return
	}
	log.Printf("⚠️  Error retrieving %s from cache (treating as miss): %v", what, err)
}

func shortKey(key string) string {
	if len(key) > 16 {
		return key[:16]
	}
	return key
}
