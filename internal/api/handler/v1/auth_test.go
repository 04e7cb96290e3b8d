package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/api/middleware"
	"github.com/espacios-app/reservas-api/internal/config"
	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uint, name, surname, phone string) (domain.User, error) {
	args := m.Called(ctx, id, name, surname, phone)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	args := m.Called(ctx, id, current, next)
	return args.Error(0)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testAPIConfig() *config.APIConfig {
	return &config.APIConfig{
		JWTSigningKey: "test-signing-key",
		TokenTTLHours: 1,
	}
}

// asUser simulates the authenticator by stashing the claims the way the
// middleware would.
func asUser(userID uint, role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, userID)
		ctx.Set(middleware.CtxKeyUserRole, role)
	}
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestHandleRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := gin.H{
		"name":     "Ana",
		"surname":  "García",
		"email":    "ana@example.com",
		"password": "hunter42",
	}

	t.Run("valid registration returns a token and the user", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "ana@example.com" && u.Password == "hunter42"
		})).Return(domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleRegular}, nil)

		router := gin.New()
		router.POST("/auth/register", NewAuthHandler(testAPIConfig(), svc).HandleRegister)

		w := performRequest(router, http.MethodPost, "/auth/register", body)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp response.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, uint(1), resp.User.ID)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate email returns 400", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).Return(domain.User{}, service.ErrUserEmailExists)

		router := gin.New()
		router.POST("/auth/register", NewAuthHandler(testAPIConfig(), svc).HandleRegister)

		w := performRequest(router, http.MethodPost, "/auth/register", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("weak password returns 400 without hitting the service", func(t *testing.T) {
		svc := new(mockAuthService)

		router := gin.New()
		router.POST("/auth/register", NewAuthHandler(testAPIConfig(), svc).HandleRegister)

		weak := gin.H{"name": "Ana", "surname": "García", "email": "ana@example.com", "password": "abc"}
		w := performRequest(router, http.MethodPost, "/auth/register", weak)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestHandleLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := gin.H{"email": "ana@example.com", "password": "hunter42"}

	t.Run("valid credentials return 200 with a token", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, "ana@example.com", "hunter42").
			Return(domain.User{ID: 1, Role: domain.RoleRegular}, nil)

		router := gin.New()
		router.POST("/auth/login", NewAuthHandler(testAPIConfig(), svc).HandleLogin)

		w := performRequest(router, http.MethodPost, "/auth/login", body)

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, "ana@example.com", "hunter42").
			Return(domain.User{}, service.ErrWrongPassword)

		router := gin.New()
		router.POST("/auth/login", NewAuthHandler(testAPIConfig(), svc).HandleLogin)

		w := performRequest(router, http.MethodPost, "/auth/login", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email returns 401, same as a wrong password", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Login", mock.Anything, "ana@example.com", "hunter42").
			Return(domain.User{}, service.ErrUserNotFound)

		router := gin.New()
		router.POST("/auth/login", NewAuthHandler(testAPIConfig(), svc).HandleLogin)

		w := performRequest(router, http.MethodPost, "/auth/login", body)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
