package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/api/middleware"
	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/service"
)

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext resolves the authenticated user from the token claims
// stored by the authenticator. The role comes from the database, not the
// token, so a demoted admin loses access as soon as the row changes.
func getUserFromContext(ctx *gin.Context, svc UserGetter) (domain.User, *response.Err) {
	userID, ok := ctx.Value(middleware.CtxKeyUserID).(uint)
	if !ok {
		return domain.User{}, response.ErrMissingToken()
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrInvalidToken()
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}
