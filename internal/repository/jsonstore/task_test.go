package jsonstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos/task-tracker-project/internal/domain"
)

func newTaskRepo(t *testing.T) *TaskRepository {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return NewTaskRepository(store)
}

func TestTaskRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newTaskRepo(t)

	task := &domain.Task{
		ID:          "t1",
		Title:       "Report",
		Status:      domain.StatusPending,
		CreatorID:   "a1",
		AssigneeIDs: []string{"u1"},
	}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, task, got)

	task.Status = domain.StatusInProgress
	require.NoError(t, repo.Update(ctx, task))
	got, err = repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	removed, err := repo.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.GetByID(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	removed, err = repo.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTaskRepositoryVisibilityQueries(t *testing.T) {
	ctx := context.Background()
	repo := newTaskRepo(t)

	require.NoError(t, repo.Create(ctx, &domain.Task{ID: "t1", CreatorID: "a1", AssigneeIDs: []string{"u1"}}))
	require.NoError(t, repo.Create(ctx, &domain.Task{ID: "t2", CreatorID: "a1", AssigneeIDs: []string{"u1", "u2"}}))
	require.NoError(t, repo.Create(ctx, &domain.Task{ID: "t3", CreatorID: "a2", AssigneeIDs: []string{"u2"}}))

	byCreator, err := repo.ListByCreator(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, byCreator, 2)

	byCreator, err = repo.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, byCreator)

	byAssignee, err := repo.ListByAssignee(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byAssignee, 2)

	byAssignee, err = repo.ListByAssignee(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, byAssignee, 2)

	byAssignee, err = repo.ListByAssignee(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, byAssignee)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTaskRepositoryPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	repo := NewTaskRepository(store)
	require.NoError(t, repo.Create(ctx, &domain.Task{ID: "t1", Title: "Report", CreatorID: "a1"}))

	// Новый экземпляр хранилища читает тот же файл
	store2, err := NewStore(dir)
	require.NoError(t, err)
	repo2 := NewTaskRepository(store2)

	got, err := repo2.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Report", got.Title)
}
