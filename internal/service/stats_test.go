package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcos/task-tracker-project/internal/domain"
)

func TestStatsService_GetStats(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	taskRepo := new(MockTaskRepository)

	accountRepo.On("List", mock.Anything).Return([]*domain.Account{
		{ID: "a1", IsAdmin: true},
		{ID: "u1"},
		{ID: "u2"},
	}, nil)
	taskRepo.On("List", mock.Anything).Return([]*domain.Task{
		{ID: "t1", Status: domain.StatusDone},
		{ID: "t2", Status: domain.StatusPending},
		{ID: "t3", Status: domain.StatusInProgress},
		{ID: "t4", Status: domain.StatusPaused},
	}, nil)

	svc := NewStatsService(accountRepo, taskRepo)
	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAccounts)
	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	// Everything not done counts as pending
	assert.Equal(t, 3, stats.PendingTasks)
}

func TestStatsService_GetStatsEmpty(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	taskRepo := new(MockTaskRepository)

	accountRepo.On("List", mock.Anything).Return([]*domain.Account{}, nil)
	taskRepo.On("List", mock.Anything).Return([]*domain.Task{}, nil)

	svc := NewStatsService(accountRepo, taskRepo)
	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.TotalAccounts)
	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.CompletedTasks)
	assert.Zero(t, stats.PendingTasks)
}
