package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/openai"
)

// SearchService turns free-text queries into embeddings and runs them
// against the course vector index.
type SearchService struct {
	embedder openai.Client
	vector   graph.VectorSearch
	log      *logger.Logger
}

func NewSearchService(embedder openai.Client, vector graph.VectorSearch, log *logger.Logger) (*SearchService, error) {
	if embedder == nil {
		return nil, fmt.Errorf("search service: embedder required")
	}
	if vector == nil {
		return nil, fmt.Errorf("search service: vector search required")
	}
	if log == nil {
		return nil, fmt.Errorf("search service: logger required")
	}
	return &SearchService{
		embedder: embedder,
		vector:   vector,
		log:      log.With("service", "SearchService"),
	}, nil
}

// SemanticSearch embeds the query and returns the nearest courses by cosine
// similarity.
func (s *SearchService) SemanticSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("semantic search: query required: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = 10
	}

	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("semantic search embed: %w", err)
	}

	results, err := s.vector.SearchByEmbedding(ctx, embeddings[0], limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	s.log.Info("semantic search completed", "query", query, "results", len(results))
	return results, nil
}
