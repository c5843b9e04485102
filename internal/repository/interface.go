package repository

import (
	"context"

	"github.com/marcos/task-tracker-project/internal/domain"
)

// AccountRepository определяет методы для работы с данными аккаунтов
type AccountRepository interface {
	// Create сохраняет новый аккаунт
	Create(ctx context.Context, account *domain.Account) error

	// GetByID получает аккаунт по ID
	GetByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetByUsername получает аккаунт по точному совпадению имени пользователя
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// List возвращает все аккаунты
	List(ctx context.Context) ([]*domain.Account, error)

	// Update перезаписывает существующий аккаунт
	Update(ctx context.Context, account *domain.Account) error

	// Delete удаляет аккаунт по ID и сообщает, был ли он удален
	Delete(ctx context.Context, accountID string) (bool, error)
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create сохраняет новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу по ID
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// List возвращает все задачи
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByCreator возвращает задачи, созданные указанным аккаунтом
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Task, error)

	// ListByAssignee возвращает задачи, где аккаунт назначен исполнителем
	ListByAssignee(ctx context.Context, accountID string) ([]*domain.Task, error)

	// Update перезаписывает существующую задачу
	Update(ctx context.Context, task *domain.Task) error

	// Delete удаляет задачу по ID и сообщает, была ли она удалена
	Delete(ctx context.Context, taskID string) (bool, error)
}
