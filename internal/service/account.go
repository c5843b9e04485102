package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/policy"
	"github.com/marcos/task-tracker-project/internal/repository"
	"github.com/marcos/task-tracker-project/pkg/crypto"
	"github.com/marcos/task-tracker-project/pkg/logger"
)

// AccountDirectory handles business logic for accounts
type AccountDirectory struct {
	accountRepo repository.AccountRepository
}

// NewAccountDirectory creates a new AccountDirectory
func NewAccountDirectory(accountRepo repository.AccountRepository) *AccountDirectory {
	return &AccountDirectory{
		accountRepo: accountRepo,
	}
}

// RegisterInput represents the fields of a registration request
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Team     string
}

// Register creates a regular account with a unique username
func (s *AccountDirectory) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	return s.register(ctx, in, false)
}

// RegisterAdmin creates an administrator account. The HTTP boundary gates
// this behind the admin middleware; the bootstrap install path calls it
// directly.
func (s *AccountDirectory) RegisterAdmin(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	return s.register(ctx, in, true)
}

func (s *AccountDirectory) register(ctx context.Context, in RegisterInput, isAdmin bool) (*domain.Account, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	// Case-sensitive exact match against the stored accounts
	if _, err := s.accountRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	digest, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		PasswordHash: digest,
		IsAdmin:      isAdmin,
		Role:         in.Role,
		Team:         in.Team,
	}
	if account.Role == "" {
		account.Role = domain.Unspecified
	}
	if account.Team == "" {
		account.Team = domain.Unspecified
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account.Sanitized(), nil
}

// Get retrieves an account by ID with credential material stripped
func (s *AccountDirectory) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Sanitized(), nil
}

// List returns all accounts with credential material stripped
func (s *AccountDirectory) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sanitized := make([]*domain.Account, 0, len(accounts))
	for _, account := range accounts {
		sanitized = append(sanitized, account.Sanitized())
	}

	return sanitized, nil
}

// FindByUsername retrieves an account by exact username match, digest
// included. Login and uniqueness checks only; never rendered to clients.
func (s *AccountDirectory) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.accountRepo.GetByUsername(ctx, username)
}

// UpdateAccountInput represents the mutable account fields; nil fields
// retain their stored value
type UpdateAccountInput struct {
	Username *string
	Password *string
	Role     *string
	Team     *string
}

// Update modifies an account. Only the account holder may update it;
// the admin flag is never mutable here.
func (s *AccountDirectory) Update(ctx context.Context, caller domain.Caller, accountID string, in UpdateAccountInput) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if d := policy.CanEditAccount(caller, account); !d.Allowed {
		s.logDenied(ctx, "account update denied", caller, accountID, d)
		return nil, domain.ErrForbidden
	}

	if in.Username != nil && *in.Username != account.Username {
		if _, err := s.accountRepo.GetByUsername(ctx, *in.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		account.Username = *in.Username
	}

	if in.Password != nil {
		digest, err := crypto.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = digest
	}

	if in.Role != nil {
		account.Role = *in.Role
	}
	if in.Team != nil {
		account.Team = *in.Team
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account.Sanitized(), nil
}

// Delete removes an account. Admin-only; administrator accounts are
// categorically protected.
func (s *AccountDirectory) Delete(ctx context.Context, caller domain.Caller, accountID string) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if d := policy.CanDeleteAccount(caller, account); !d.Allowed {
		s.logDenied(ctx, "account delete denied", caller, accountID, d)
		return domain.ErrForbidden
	}

	removed, err := s.accountRepo.Delete(ctx, accountID)
	if err != nil {
		return err
	}
	if !removed {
		logger.FromContext(ctx).Warn("account vanished between lookup and delete",
			zap.String("account_id", accountID))
	}

	return nil
}

func (s *AccountDirectory) logDenied(ctx context.Context, msg string, caller domain.Caller, targetID string, d policy.Decision) {
	logger.FromContext(ctx).Warn(msg,
		zap.String("caller_id", caller.ID),
		zap.String("target_id", targetID),
		zap.String("reason", string(d.Reason)),
	)
}
