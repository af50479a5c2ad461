package service

import (
	"context"

	"github.com/aidar/task-manager-project/internal/domain"
	"github.com/aidar/task-manager-project/internal/repository"
)

// StatsService maintains the derived stats snapshot
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// Recompute rebuilds the snapshot from the current task store contents and
// overwrites the stored one unconditionally
func (s *StatsService) Recompute(ctx context.Context) (*domain.StatsSnapshot, error) {
	snapshot, err := s.statsRepo.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.statsRepo.Upsert(ctx, domain.GlobalStatsName, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Current returns the cached snapshot; a zero snapshot before the first
// recompute
func (s *StatsService) Current(ctx context.Context) (*domain.StatsSnapshot, error) {
	return s.statsRepo.Get(ctx, domain.GlobalStatsName)
}
