package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/request"
	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id uint, name, surname, phone string) (domain.User, error)
	ChangePassword(ctx context.Context, id uint, current, next string) error
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} domain.User
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /users/profile [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body     request.UpdateProfileRequest true "request body"
// @Success      200     {object} domain.User
// @Failure      400     {object} response.Err
// @Failure      401     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /users/profile [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateProfile(ctx.Request.Context(), user.ID, req.Name, req.Surname, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", user.ID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleChangePassword godoc
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body     request.ChangePasswordRequest true "request body"
// @Success      200     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      401     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /users/change-password [put]
// @Security     BearerAuth
func (h *UserHandler) HandleChangePassword(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err := h.svc.ChangePassword(ctx.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("current password is incorrect")))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "password updated"})
}

// HandleGetUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200 {array}  domain.User
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUsers(ctx *gin.Context) {
	users, err := h.svc.GetAllUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUsers -> h.svc.GetAllUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Description  Fails while the user still has pending or confirmed reservations.
// @Tags         users
// @Produce      json
// @Param        userID path     int true "user ID"
// @Success      200    {object} response.Message
// @Failure      400    {object} response.Err
// @Failure      403    {object} response.Err
// @Failure      404    {object} response.Err
// @Failure      500    {object} response.Err
// @Router       /users/{userID} [delete]
// @Security     BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid user ID")))

		return
	}

	if err = h.svc.DeleteUser(ctx.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrUserHasReservations):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserHasReservations))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "user deleted"})
}
