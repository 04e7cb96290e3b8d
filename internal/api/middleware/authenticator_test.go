package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewAuthenticator(testSigningKey).VerifyJWT())
	router.GET("/me", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id": ctx.Value(CtxKeyUserID),
			"role":    ctx.Value(CtxKeyUserRole),
		})
	})
	router.GET("/admin-only", RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func doAuthRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestVerifyJWT(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("valid token passes and stores the claims", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 5, domain.RoleRegular, time.Hour)
		require.NoError(t, err)

		w := doAuthRequest(router, "/me", "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":5`)
		assert.Contains(t, w.Body.String(), `"role":"regular"`)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		w := doAuthRequest(router, "/me", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("header without bearer prefix returns 401", func(t *testing.T) {
		w := doAuthRequest(router, "/me", "Token abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token returns 403", func(t *testing.T) {
		w := doAuthRequest(router, "/me", "Bearer not.a.token")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("expired token returns 403", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 5, domain.RoleRegular, -time.Minute)
		require.NoError(t, err)

		w := doAuthRequest(router, "/me", "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("token signed with another key returns 403", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte("another-key"), 5, domain.RoleRegular, time.Hour)
		require.NoError(t, err)

		w := doAuthRequest(router, "/me", "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	router := setupAuthRouter(t)

	t.Run("admin token passes", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 1, domain.RoleAdmin, time.Hour)
		require.NoError(t, err)

		w := doAuthRequest(router, "/admin-only", "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular token returns 403", func(t *testing.T) {
		token, err := jwthelper.GenerateToken([]byte(testSigningKey), 5, domain.RoleRegular, time.Hour)
		require.NoError(t, err)

		w := doAuthRequest(router, "/admin-only", "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
