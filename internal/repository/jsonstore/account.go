package jsonstore

import (
	"context"

	"github.com/marcos/task-tracker-project/internal/domain"
)

// AccountRepository реализует repository.AccountRepository поверх JSON хранилища
type AccountRepository struct {
	store *Store
}

// NewAccountRepository создает новый экземпляр AccountRepository
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) loadAll() ([]*domain.Account, error) {
	accounts := []*domain.Account{}
	if err := r.store.Load(CollectionUsers, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create сохраняет новый аккаунт
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	accounts, err := r.loadAll()
	if err != nil {
		return err
	}

	accounts = append(accounts, account)
	return r.store.Save(CollectionUsers, accounts)
}

// GetByID получает аккаунт по ID
func (r *AccountRepository) GetByID(_ context.Context, accountID string) (*domain.Account, error) {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	accounts, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == accountID {
			return account, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// GetByUsername получает аккаунт по точному совпадению имени пользователя.
// Сравнение чувствительно к регистру.
func (r *AccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	accounts, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.Username == username {
			return account, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// List возвращает все аккаунты
func (r *AccountRepository) List(_ context.Context) ([]*domain.Account, error) {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	return r.loadAll()
}

// Update перезаписывает существующий аккаунт
func (r *AccountRepository) Update(_ context.Context, account *domain.Account) error {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	accounts, err := r.loadAll()
	if err != nil {
		return err
	}

	for i := range accounts {
		if accounts[i].ID == account.ID {
			accounts[i] = account
			return r.store.Save(CollectionUsers, accounts)
		}
	}

	return domain.ErrAccountNotFound
}

// Delete удаляет аккаунт по ID и сообщает, был ли он удален
func (r *AccountRepository) Delete(_ context.Context, accountID string) (bool, error) {
	mu := r.store.Guard(CollectionUsers)
	mu.Lock()
	defer mu.Unlock()

	accounts, err := r.loadAll()
	if err != nil {
		return false, err
	}

	remaining := accounts[:0]
	for _, account := range accounts {
		if account.ID != accountID {
			remaining = append(remaining, account)
		}
	}

	removed := len(remaining) < len(accounts)
	if !removed {
		return false, nil
	}

	if err := r.store.Save(CollectionUsers, remaining); err != nil {
		return false, err
	}

	return true, nil
}
