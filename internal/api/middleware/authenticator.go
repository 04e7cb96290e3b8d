package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/pkg/jwthelper"
)

const (
	CtxKeyUserID   = "userID"
	CtxKeyUserRole = "userRole"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT gates a route group behind a bearer token. A missing token is
// 401, an invalid or expired one is 403. On success the user's ID and role
// are stored in the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.RenderErr(ctx, response.ErrMissingToken())

			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := jwthelper.ParseToken(a.signingKey, raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken())

			return
		}

		ctx.Set(CtxKeyUserID, claims.UserID)
		ctx.Set(CtxKeyUserRole, claims.Role)
		ctx.Next()
	}
}
