package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/pkg/crypto"
)

func newAuthService(t *testing.T, repo *MockAccountRepository, secret string) *AuthService {
	t.Helper()
	return NewAuthService(NewAccountDirectory(repo), secret, time.Hour)
}

func storedAccount(t *testing.T, password string) *domain.Account {
	t.Helper()
	digest, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &domain.Account{ID: "u1", Username: "alice", PasswordHash: digest, IsAdmin: true}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token that validates back to the caller", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetByUsername", mock.Anything, "alice").Return(storedAccount(t, "secret123"), nil)

		svc := newAuthService(t, accountRepo, "test-secret")
		token, err := svc.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.AccountID)
		assert.Equal(t, "alice", claims.Username)
		assert.True(t, claims.IsAdmin)

		caller := claims.Caller()
		assert.Equal(t, "u1", caller.ID)
		assert.True(t, caller.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetByUsername", mock.Anything, "alice").Return(storedAccount(t, "secret123"), nil)

		svc := newAuthService(t, accountRepo, "test-secret")
		_, err := svc.Login(context.Background(), "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown username maps to the same error as a wrong password", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

		svc := newAuthService(t, accountRepo, "test-secret")
		_, err := svc.Login(context.Background(), "ghost", "secret123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := newAuthService(t, new(MockAccountRepository), "test-secret")

		_, err := svc.Login(context.Background(), "", "secret123")
		assert.ErrorIs(t, err, domain.ErrCredentialsRequired)

		_, err = svc.Login(context.Background(), "alice", "")
		assert.ErrorIs(t, err, domain.ErrCredentialsRequired)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	accountRepo.On("GetByUsername", mock.Anything, "alice").Return(storedAccount(t, "secret123"), nil)

	svc := newAuthService(t, accountRepo, "test-secret")
	token, err := svc.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := newAuthService(t, accountRepo, "other-secret")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService(NewAccountDirectory(accountRepo), "test-secret", -time.Minute)
		stale, err := expired.Login(context.Background(), "alice", "secret123")
		require.NoError(t, err)

		_, err = expired.ValidateToken(stale)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
