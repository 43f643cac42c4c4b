package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/opteron-x86/exam-ace/internal/cache"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

const (
	statsCacheKey     = "exam-ace:stats:overall"
	statsCachePattern = "exam-ace:stats:*"
	banksCacheKey     = "exam-ace:banks:list"
	statsCacheTTL     = 5 * time.Minute
)

// StatsService serves aggregate statistics, cached until the next session
// completes or is deleted.
type StatsService interface {
	Overall(ctx context.Context) (*repositories.OverallStats, error)
	// Invalidate drops cached statistics; wired to quiz lifecycle events.
	Invalidate(ctx context.Context)
}

type statsService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger utils.Logger
}

func NewStatsService(repo repositories.Repository, cacheService cache.CacheService, logger utils.Logger) StatsService {
	return &statsService{repo: repo, cache: cacheService, logger: logger}
}

func (s *statsService) Overall(ctx context.Context) (*repositories.OverallStats, error) {
	var cached repositories.OverallStats
	err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("stats cache read failed", "error", err)
	}

	stats, err := s.repo.Stats().Overall(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", "error", err)
	}
	return stats, nil
}

func (s *statsService) Invalidate(ctx context.Context) {
	// Drop the whole stats key family so derived breakdowns cached under
	// the prefix go stale together.
	if err := s.cache.DeletePattern(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed", "error", err)
	}
}

// BankService lists available question banks, cached briefly since bank
// files only change when edited on disk.
type BankService interface {
	List(ctx context.Context) ([]models.BankSummary, error)
}

type bankService struct {
	banks  BankLoader
	cache  cache.CacheService
	logger utils.Logger
}

func NewBankService(banks BankLoader, cacheService cache.CacheService, logger utils.Logger) BankService {
	return &bankService{banks: banks, cache: cacheService, logger: logger}
}

func (s *bankService) List(ctx context.Context) ([]models.BankSummary, error) {
	var cached []models.BankSummary
	if err := s.cache.Get(ctx, banksCacheKey, &cached); err == nil {
		return cached, nil
	}

	summaries, err := s.banks.ListBanks()
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}

	if err := s.cache.Set(ctx, banksCacheKey, summaries, statsCacheTTL); err != nil {
		s.logger.Warn("banks cache write failed", "error", err)
	}
	return summaries, nil
}
