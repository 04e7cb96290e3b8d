package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/domain"
)

// RequireAdmin rejects non-admin callers with 403. Must run after VerifyJWT.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, ok := ctx.Value(CtxKeyUserRole).(domain.Role)
		if !ok || role != domain.RoleAdmin {
			userID := ctx.Value(CtxKeyUserID)
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", userID)))

			return
		}

		ctx.Next()
	}
}
