package service

import (
	"context"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/repository"
)

// Stats represents overall application statistics
type Stats struct {
	TotalAccounts  int `json:"total_accounts"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
}

// StatsService handles statistics queries
type StatsService struct {
	accountRepo repository.AccountRepository
	taskRepo    repository.TaskRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(accountRepo repository.AccountRepository, taskRepo repository.TaskRepository) *StatsService {
	return &StatsService{
		accountRepo: accountRepo,
		taskRepo:    taskRepo,
	}
}

// GetStats returns counters over the full collections. Completed means
// status done; everything else counts as pending.
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, task := range tasks {
		if task.Status == domain.StatusDone {
			completed++
		}
	}

	return &Stats{
		TotalAccounts:  len(accounts),
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		PendingTasks:   len(tasks) - completed,
	}, nil
}
