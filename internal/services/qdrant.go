package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/resume-screener/internal/models"
)

// SimilarityService maintains a best-effort vector index of parsed resumes,
// keyed by document fingerprint, for similar-candidate lookups. It is a side
// channel: indexing failures never affect parse or screen responses.
type SimilarityService interface {
	InitCollection() error
	IndexResume(ctx context.Context, fileHash, resumeText string) error
	FindSimilar(ctx context.Context, fileHash string, limit int) ([]models.SimilarResume, error)
}

type similarityService struct {
	client         *qdrant.Client
	gemini         GeminiService
	collectionName string
	vectorSize     uint64
}

func NewSimilarityService(urlStr, apiKey, collectionName string, gemini GeminiService) (SimilarityService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &similarityService{
		client:         client,
		gemini:         gemini,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements SimilarityService.
func (s *similarityService) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully", s.collectionName)
	return nil
}

// IndexResume implements SimilarityService. The point id derives from the
// file hash, so re-indexing the same document upserts instead of duplicating.
func (s *similarityService) IndexResume(ctx context.Context, fileHash, resumeText string) error {
	embedding, err := s.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("failed to embed resume: %w", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(pointIDFromHash(fileHash)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"file_hash": fileHash,
			"text":      resumeText,
		}),
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// FindSimilar implements SimilarityService. Looks up the indexed resume by
// file hash, embeds its stored text, and returns the nearest other resumes.
func (s *similarityService) FindSimilar(ctx context.Context, fileHash string, limit int) ([]models.SimilarResume, error) {
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("file_hash", fileHash),
			},
		},
		Limit:       qdrant.PtrOf(uint64(1)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up resume: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("resume %s is not indexed", fileHash)
	}

	text := ""
	if v, ok := points[0].Payload["text"]; ok {
		if sv, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			text = sv.StringValue
		}
	}
	if text == "" {
		return nil, fmt.Errorf("indexed resume %s has no stored text", fileHash)
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query resume: %w", err)
	}

	searchResult, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter: &qdrant.Filter{
			MustNot: []*qdrant.Condition{
				qdrant.NewMatch("file_hash", fileHash),
			},
		},
		Limit:       qdrant.PtrOf(uint64(limit)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.SimilarResume
	for _, point := range searchResult {
		result := models.SimilarResume{Score: point.Score}
		if v, ok := point.Payload["file_hash"]; ok {
			if sv, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.FileHash = sv.StringValue
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// pointIDFromHash maps the leading 64 bits of the hex fingerprint onto a
// numeric qdrant point id.
func pointIDFromHash(fileHash string) uint64 {
	if len(fileHash) < 16 {
		return 0
	}
	id, err := strconv.ParseUint(fileHash[:16], 16, 64)
	if err != nil {
		return 0
	}
	return id
}
