package jsonstore

import (
	"context"

	"github.com/marcos/task-tracker-project/internal/domain"
)

// TaskRepository реализует repository.TaskRepository поверх JSON хранилища
type TaskRepository struct {
	store *Store
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) loadAll() ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	if err := r.store.Load(CollectionTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create сохраняет новую задачу
func (r *TaskRepository) Create(_ context.Context, task *domain.Task) error {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return err
	}

	tasks = append(tasks, task)
	return r.store.Save(CollectionTasks, tasks)
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		if task.ID == taskID {
			return task, nil
		}
	}

	return nil, domain.ErrTaskNotFound
}

// List возвращает все задачи
func (r *TaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	return r.loadAll()
}

// ListByCreator возвращает задачи, созданные указанным аккаунтом
func (r *TaskRepository) ListByCreator(_ context.Context, creatorID string) ([]*domain.Task, error) {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	matched := []*domain.Task{}
	for _, task := range tasks {
		if task.IsCreator(creatorID) {
			matched = append(matched, task)
		}
	}

	return matched, nil
}

// ListByAssignee возвращает задачи, где аккаунт назначен исполнителем
func (r *TaskRepository) ListByAssignee(_ context.Context, accountID string) ([]*domain.Task, error) {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	matched := []*domain.Task{}
	for _, task := range tasks {
		if task.IsAssignee(accountID) {
			matched = append(matched, task)
		}
	}

	return matched, nil
}

// Update перезаписывает существующую задачу
func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			return r.store.Save(CollectionTasks, tasks)
		}
	}

	return domain.ErrTaskNotFound
}

// Delete удаляет задачу по ID и сообщает, была ли она удалена
func (r *TaskRepository) Delete(_ context.Context, taskID string) (bool, error) {
	mu := r.store.Guard(CollectionTasks)
	mu.Lock()
	defer mu.Unlock()

	tasks, err := r.loadAll()
	if err != nil {
		return false, err
	}

	remaining := tasks[:0]
	for _, task := range tasks {
		if task.ID != taskID {
			remaining = append(remaining, task)
		}
	}

	removed := len(remaining) < len(tasks)
	if !removed {
		return false, nil
	}

	if err := r.store.Save(CollectionTasks, remaining); err != nil {
		return false, err
	}

	return true, nil
}
