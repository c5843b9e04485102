package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/pkg/crypto"
)

func TestAccountDirectory_Register(t *testing.T) {
	tests := []struct {
		name        string
		in          RegisterInput
		isAdmin     bool
		setupMocks  func(*MockAccountRepository)
		expectedErr error
	}{
		{
			name: "registers account with hashed password and defaults",
			in:   RegisterInput{Username: "alice", Password: "secret123"},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByUsername", mock.Anything, "alice").Return(nil, domain.ErrAccountNotFound)
				ar.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
					return a.Username == "alice" &&
						a.PasswordHash != "" &&
						a.PasswordHash != "secret123" &&
						!a.IsAdmin &&
						a.Role == domain.Unspecified &&
						a.Team == domain.Unspecified &&
						a.ID != ""
				})).Return(nil)
			},
		},
		{
			name:    "registers admin account with role and team",
			in:      RegisterInput{Username: "boss", Password: "secret123", Role: "manager", Team: "core"},
			isAdmin: true,
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByUsername", mock.Anything, "boss").Return(nil, domain.ErrAccountNotFound)
				ar.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
					return a.IsAdmin && a.Role == "manager" && a.Team == "core"
				})).Return(nil)
			},
		},
		{
			name: "duplicate username",
			in:   RegisterInput{Username: "alice", Password: "secret123"},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByUsername", mock.Anything, "alice").Return(&domain.Account{ID: "u1", Username: "alice"}, nil)
			},
			expectedErr: domain.ErrUsernameTaken,
		},
		{
			name:        "missing username",
			in:          RegisterInput{Password: "secret123"},
			expectedErr: domain.ErrCredentialsRequired,
		},
		{
			name:        "missing password",
			in:          RegisterInput{Username: "alice"},
			expectedErr: domain.ErrCredentialsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(MockAccountRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(accountRepo)
			}

			directory := NewAccountDirectory(accountRepo)

			var account *domain.Account
			var err error
			if tt.isAdmin {
				account, err = directory.RegisterAdmin(context.Background(), tt.in)
			} else {
				account, err = directory.Register(context.Background(), tt.in)
			}

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, account)
			} else {
				require.NoError(t, err)
				// Credential material never leaves the service
				assert.Empty(t, account.PasswordHash)
				assert.Equal(t, tt.isAdmin, account.IsAdmin)
			}
			accountRepo.AssertExpectations(t)
		})
	}
}

func TestAccountDirectory_List(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	accountRepo.On("List", mock.Anything).Return([]*domain.Account{
		{ID: "u1", Username: "alice", PasswordHash: "digest"},
		{ID: "u2", Username: "bob", PasswordHash: "digest"},
	}, nil)

	directory := NewAccountDirectory(accountRepo)
	accounts, err := directory.List(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, account := range accounts {
		assert.Empty(t, account.PasswordHash)
	}
}

func TestAccountDirectory_Update(t *testing.T) {
	stored := func() *domain.Account {
		return &domain.Account{ID: "u1", Username: "alice", PasswordHash: "digest", Role: "dev", Team: "core"}
	}
	newRole := "lead"
	newUsername := "alice2"
	taken := "bob"

	tests := []struct {
		name        string
		caller      domain.Caller
		in          UpdateAccountInput
		setupMocks  func(*MockAccountRepository)
		expectedErr error
		check       func(*testing.T, *domain.Account)
	}{
		{
			name:   "holder updates role, other fields retained",
			caller: domain.Caller{ID: "u1"},
			in:     UpdateAccountInput{Role: &newRole},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(stored(), nil)
				ar.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
					return a.Role == "lead" && a.Username == "alice" && a.Team == "core"
				})).Return(nil)
			},
			check: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "lead", a.Role)
				assert.Equal(t, "core", a.Team)
			},
		},
		{
			name:   "username change checks uniqueness",
			caller: domain.Caller{ID: "u1"},
			in:     UpdateAccountInput{Username: &newUsername},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(stored(), nil)
				ar.On("GetByUsername", mock.Anything, "alice2").Return(nil, domain.ErrAccountNotFound)
				ar.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
					return a.Username == "alice2"
				})).Return(nil)
			},
			check: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "alice2", a.Username)
			},
		},
		{
			name:   "username change to a taken name",
			caller: domain.Caller{ID: "u1"},
			in:     UpdateAccountInput{Username: &taken},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(stored(), nil)
				ar.On("GetByUsername", mock.Anything, "bob").Return(&domain.Account{ID: "u2", Username: "bob"}, nil)
			},
			expectedErr: domain.ErrUsernameTaken,
		},
		{
			name:   "another user is forbidden",
			caller: domain.Caller{ID: "u2"},
			in:     UpdateAccountInput{Role: &newRole},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(stored(), nil)
			},
			expectedErr: domain.ErrForbidden,
		},
		{
			name:   "admin has no override for foreign accounts",
			caller: domain.Caller{ID: "admin-1", IsAdmin: true},
			in:     UpdateAccountInput{Role: &newRole},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(stored(), nil)
			},
			expectedErr: domain.ErrForbidden,
		},
		{
			name:   "missing account",
			caller: domain.Caller{ID: "u1"},
			in:     UpdateAccountInput{Role: &newRole},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("GetByID", mock.Anything, "u1").Return(nil, domain.ErrAccountNotFound)
			},
			expectedErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(MockAccountRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(accountRepo)
			}

			directory := NewAccountDirectory(accountRepo)
			account, err := directory.Update(context.Background(), tt.caller, "u1", tt.in)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Empty(t, account.PasswordHash)
				if tt.check != nil {
					tt.check(t, account)
				}
			}
			accountRepo.AssertExpectations(t)
		})
	}
}

func TestAccountDirectory_UpdateRehashesPassword(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	accountRepo.On("GetByID", mock.Anything, "u1").Return(&domain.Account{ID: "u1", Username: "alice", PasswordHash: "old"}, nil)

	var persisted string
	accountRepo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*domain.Account).PasswordHash
	}).Return(nil)

	newPassword := "brand-new"
	directory := NewAccountDirectory(accountRepo)
	_, err := directory.Update(context.Background(), domain.Caller{ID: "u1"}, "u1", UpdateAccountInput{Password: &newPassword})

	require.NoError(t, err)
	assert.NotEqual(t, "old", persisted)
	assert.True(t, crypto.CheckPassword(newPassword, persisted))
}

func TestAccountDirectory_Delete(t *testing.T) {
	tests := []struct {
		name        string
		caller      domain.Caller
		target      *domain.Account
		setupMocks  func(*MockAccountRepository)
		expectedErr error
	}{
		{
			name:   "admin deletes regular account",
			caller: domain.Caller{ID: "admin-1", IsAdmin: true},
			target: &domain.Account{ID: "u1", Username: "alice"},
			setupMocks: func(ar *MockAccountRepository) {
				ar.On("Delete", mock.Anything, "u1").Return(true, nil)
			},
		},
		{
			name:        "regular account cannot delete",
			caller:      domain.Caller{ID: "u2"},
			target:      &domain.Account{ID: "u1", Username: "alice"},
			expectedErr: domain.ErrForbidden,
		},
		{
			name:        "administrator accounts are protected",
			caller:      domain.Caller{ID: "admin-1", IsAdmin: true},
			target:      &domain.Account{ID: "admin-2", Username: "boss", IsAdmin: true},
			expectedErr: domain.ErrForbidden,
		},
		{
			name:        "admin cannot delete itself",
			caller:      domain.Caller{ID: "admin-1", IsAdmin: true},
			target:      &domain.Account{ID: "admin-1", Username: "root", IsAdmin: true},
			expectedErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(MockAccountRepository)
			accountRepo.On("GetByID", mock.Anything, tt.target.ID).Return(tt.target, nil)
			if tt.setupMocks != nil {
				tt.setupMocks(accountRepo)
			}

			directory := NewAccountDirectory(accountRepo)
			err := directory.Delete(context.Background(), tt.caller, tt.target.ID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			accountRepo.AssertExpectations(t)
		})
	}
}
