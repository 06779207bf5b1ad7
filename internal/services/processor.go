package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"alfredoptarigan/resume-screener/internal/cache"
	"alfredoptarigan/resume-screener/internal/fingerprint"
	"alfredoptarigan/resume-screener/internal/models"
)

// ResumeCache is the slice of the cache manager the pipeline depends on.
type ResumeCache interface {
	GetParsedResume(fileHash string) models.JSONPayload
	StoreParsedResume(fileHash string, payload models.JSONPayload) bool
	GetScreeningResult(fileHash, jobTitle, jobDescription string) models.JSONPayload
	StoreScreeningResult(fileHash, jobTitle, jobDescription string, payload models.JSONPayload) bool
	GetCompleteResult(fileHash, jobTitle, jobDescription string) *cache.CompleteResult
}

// ResumeProcessor is the staged lookup/compute/populate pipeline between the
// API and the two oracles.
type ResumeProcessor interface {
	ParseResume(ctx context.Context, fileBytes []byte, filename string) (*ParseOutcome, error)
	ScreenResume(ctx context.Context, fileBytes []byte, filename, jobTitle, jobDescription string, weights map[string]float64) (*ScreenOutcome, error)
}

// ParseOutcome is the result of the parse-only pipeline.
type ParseOutcome struct {
	Parsed   models.JSONPayload
	Cached   bool
	FileHash string
}

// ScreenOutcome is the result of the screen pipeline, with cache provenance
// for both halves.
type ScreenOutcome struct {
	Parsed          models.JSONPayload
	Screened        models.JSONPayload
	ParsedCached    bool
	ScreeningCached bool
	FileHash        string
}

type resumeProcessor struct {
	cache      ResumeCache
	extractor  TextExtractor
	parser     ResumeParser
	screener   ResumeScreener
	storage    StorageService    // optional, best-effort
	similarity SimilarityService // optional, best-effort

	// Concurrent identical requests collapse onto one oracle run per key.
	parseGroup  singleflight.Group
	screenGroup singleflight.Group
}

func NewResumeProcessor(
	resumeCache ResumeCache,
	extractor TextExtractor,
	parser ResumeParser,
	screener ResumeScreener,
	storage StorageService,
	similarity SimilarityService,
) ResumeProcessor {
	return &resumeProcessor{
		cache:      resumeCache,
		extractor:  extractor,
		parser:     parser,
		screener:   screener,
		storage:    storage,
		similarity: similarity,
	}
}

// ParseResume implements ResumeProcessor: serve the parsed profile from cache
// when the document fingerprint is known, otherwise extract, parse and
// populate the cache.
func (p *resumeProcessor) ParseResume(ctx context.Context, fileBytes []byte, filename string) (*ParseOutcome, error) {
	fileHash := fingerprint.Document(fileBytes)

	v, err, _ := p.parseGroup.Do(fileHash, func() (interface{}, error) {
		return p.resolveParse(ctx, fileBytes, filename, fileHash)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ParseOutcome), nil
}

func (p *resumeProcessor) resolveParse(ctx context.Context, fileBytes []byte, filename, fileHash string) (*ParseOutcome, error) {
	if cached := p.cache.GetParsedResume(fileHash); cached != nil {
		return &ParseOutcome{Parsed: cached, Cached: true, FileHash: fileHash}, nil
	}

	parsed, err := p.parseFresh(ctx, fileBytes, filename, fileHash)
	if err != nil {
		return nil, err
	}

	return &ParseOutcome{Parsed: parsed, Cached: false, FileHash: fileHash}, nil
}

// ScreenResume implements ResumeProcessor: three-level resolution, terminal
// at the first satisfied level.
func (p *resumeProcessor) ScreenResume(ctx context.Context, fileBytes []byte, filename, jobTitle, jobDescription string, weights map[string]float64) (*ScreenOutcome, error) {
	fileHash := fingerprint.Document(fileBytes)
	screeningKey := fingerprint.Screening(fileHash, jobTitle, jobDescription)

	v, err, _ := p.screenGroup.Do(screeningKey, func() (interface{}, error) {
		return p.resolveScreening(ctx, fileBytes, filename, fileHash, jobTitle, jobDescription, weights)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ScreenOutcome), nil
}

func (p *resumeProcessor) resolveScreening(ctx context.Context, fileBytes []byte, filename, fileHash, jobTitle, jobDescription string, weights map[string]float64) (*ScreenOutcome, error) {
	// Level 1: complete hit, both halves cached. No oracle work.
	if complete := p.cache.GetCompleteResult(fileHash, jobTitle, jobDescription); complete != nil {
		log.Println("✓ Complete cache HIT (both parsed + screened)")
		return &ScreenOutcome{
			Parsed:          complete.Parsed,
			Screened:        complete.Screened,
			ParsedCached:    true,
			ScreeningCached: true,
			FileHash:        fileHash,
		}, nil
	}

	// Level 2: parsed profile cached, screening fresh.
	if parsed := p.cache.GetParsedResume(fileHash); parsed != nil {
		log.Println("✓ Parsed resume cache HIT - screening with cached data")

		screened, err := p.screener.ScreenResume(ctx, parsed, jobTitle, jobDescription, weights)
		if err != nil {
			return nil, err
		}
		p.cache.StoreScreeningResult(fileHash, jobTitle, jobDescription, screened)

		return &ScreenOutcome{
			Parsed:          parsed,
			Screened:        screened,
			ParsedCached:    true,
			ScreeningCached: false,
			FileHash:        fileHash,
		}, nil
	}

	// Level 3: full miss. Parse, then screen, populating the cache after each
	// successful oracle call. A failed call caches nothing for its stage.
	log.Println("✗ Complete cache MISS - parsing and screening from scratch")

	parsed, err := p.parseFresh(ctx, fileBytes, filename, fileHash)
	if err != nil {
		return nil, err
	}

	screened, err := p.screener.ScreenResume(ctx, parsed, jobTitle, jobDescription, weights)
	if err != nil {
		return nil, err
	}
	p.cache.StoreScreeningResult(fileHash, jobTitle, jobDescription, screened)

	return &ScreenOutcome{
		Parsed:          parsed,
		Screened:        screened,
		ParsedCached:    false,
		ScreeningCached: false,
		FileHash:        fileHash,
	}, nil
}

// parseFresh runs extraction and the parsing oracle, stores the result, and
// fires the best-effort side channels (archive, similarity index).
func (p *resumeProcessor) parseFresh(ctx context.Context, fileBytes []byte, filename, fileHash string) (models.JSONPayload, error) {
	resumeText, err := p.extractor.ExtractText(fileBytes, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	log.Printf("📄 Extracted %d characters from %s", len(resumeText), filename)

	parsed, err := p.parser.ParseResume(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	p.cache.StoreParsedResume(fileHash, parsed)

	if p.storage != nil {
		if _, err := p.storage.ArchiveFile(fileHash, filename, fileBytes); err != nil {
			log.Printf("⚠️  Failed to archive %s: %v", filename, err)
		}
	}
	if p.similarity != nil {
		if err := p.similarity.IndexResume(ctx, fileHash, resumeText); err != nil {
			log.Printf("⚠️  Failed to index resume %s for similarity search: %v", shortHash(fileHash), err)
		}
	}

	return parsed, nil
}

func shortHash(fileHash string) string {
	if len(fileHash) > 16 {
		return fileHash[:16]
	}
	return fileHash
}
