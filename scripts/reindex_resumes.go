package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

// Rebuilds the Qdrant similarity index from the parsed-resume cache. Useful
// after changing the embedding model or wiping the collection.
func main() {
	log.Println("🚀 Starting resume reindex...")

	// Load configuration
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	parsedRepo := repositories.NewParsedResumeRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	similarityService, err := services.NewSimilarityService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := similarityService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	rows, err := parsedRepo.All()
	if err != nil {
		log.Fatalf("❌ Failed to list parsed resumes: %v", err)
	}

	log.Printf("📄 Found %d parsed resumes to index", len(rows))

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for i, row := range rows {
		// The archived originals may be gone, so the parsed profile stands in
		// as the embedded text.
		if err := similarityService.IndexResume(ctx, row.FileHash, string(row.ParsedData)); err != nil {
			log.Printf("   ❌ Failed to index %s: %v", row.FileHash[:16], err)
			failCount++
			continue
		}

		successCount++
		if (i+1)%10 == 0 || i == len(rows)-1 {
			log.Printf("   📊 Progress: %d/%d resumes indexed", i+1, len(rows))
		}
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes indexed successfully!")
}
