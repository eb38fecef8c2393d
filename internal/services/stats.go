package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursekg/coursekg-backend/internal/data/graph"
	"github.com/coursekg/coursekg-backend/internal/domain"
	pkgerrors "github.com/coursekg/coursekg-backend/internal/pkg/errors"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
	"github.com/coursekg/coursekg-backend/internal/platform/redisdb"
)

const statsCacheTTL = 5 * time.Minute

// StatsService serves aggregate views over the graph, with a short-lived
// Redis cache in front of the heavier queries.
type StatsService struct {
	reader graph.StatsReader
	cache  *redisdb.Cache
	log    *logger.Logger
}

func NewStatsService(reader graph.StatsReader, cache *redisdb.Cache, log *logger.Logger) (*StatsService, error) {
	if reader == nil {
		return nil, fmt.Errorf("stats service: reader required")
	}
	if log == nil {
		return nil, fmt.Errorf("stats service: logger required")
	}
	return &StatsService{
		reader: reader,
		cache:  cache,
		log:    log.With("service", "StatsService"),
	}, nil
}

// Skills lists skills by popularity.
func (s *StatsService) Skills(ctx context.Context, limit int) ([]domain.Skill, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	key := fmt.Sprintf("stats:skills:%d", limit)
	var skills []domain.Skill
	if s.cache.GetJSON(ctx, key, &skills) {
		return skills, nil
	}

	skills, err := s.reader.SkillsByPopularity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	s.cache.SetJSON(ctx, key, skills, statsCacheTTL)
	return skills, nil
}

// RelatedSkills lists skills connected to the named one.
func (s *StatsService) RelatedSkills(ctx context.Context, skillName string, limit int) ([]string, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, fmt.Errorf("related skills: skill name required: %w", pkgerrors.ErrInvalidArgument)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	related, err := s.reader.RelatedSkills(ctx, skillName, limit)
	if err != nil {
		return nil, fmt.Errorf("related skills %q: %w", skillName, err)
	}
	return related, nil
}

// Universities lists universities with course counts and average ratings.
func (s *StatsService) Universities(ctx context.Context, limit int) ([]domain.University, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	key := fmt.Sprintf("stats:universities:%d", limit)
	var universities []domain.University
	if s.cache.GetJSON(ctx, key, &universities) {
		return universities, nil
	}

	universities, err := s.reader.Universities(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("universities: %w", err)
	}
	s.cache.SetJSON(ctx, key, universities, statsCacheTTL)
	return universities, nil
}

// Overview returns the database-wide statistics.
func (s *StatsService) Overview(ctx context.Context) (*domain.GraphStats, error) {
	const key = "stats:overview"
	var cached domain.GraphStats
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	stats, err := s.reader.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats overview: %w", err)
	}
	s.cache.SetJSON(ctx, key, stats, statsCacheTTL)
	return stats, nil
}
