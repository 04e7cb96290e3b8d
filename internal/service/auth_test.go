package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/repository"
)

type mockAuthUserRepo struct {
	mock.Mock
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Run("hashes the password and forces the regular role", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		svc := NewAuthService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			if u.Role != domain.RoleRegular {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("hunter42")) == nil
		})).Return(domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleRegular}, nil)

		created, err := svc.Register(context.Background(), domain.User{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "hunter42",
			Role:     domain.RoleAdmin, // must be ignored
		})

		require.NoError(t, err)
		assert.Equal(t, domain.RoleRegular, created.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email bubbles up", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		svc := NewAuthService(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(domain.User{}, repository.ErrUserEmailExists)

		_, err := svc.Register(context.Background(), domain.User{Email: "ana@example.com", Password: "hunter42"})

		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter42"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := domain.User{ID: 1, Email: "ana@example.com", Password: string(hash), Role: domain.RoleRegular}

	t.Run("valid credentials return the user", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		user, err := svc.Login(context.Background(), "ana@example.com", "hunter42")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		_, err := svc.Login(context.Background(), "ana@example.com", "not-it")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email maps to not found", func(t *testing.T) {
		repo := new(mockAuthUserRepo)
		svc := NewAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(domain.User{}, repository.ErrUserNotFound)

		_, err := svc.Login(context.Background(), "ghost@example.com", "hunter42")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
