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

type SpaceService interface {
	GetSpaces(ctx context.Context) ([]domain.Space, error)
	GetSpace(ctx context.Context, id uint) (domain.Space, error)
	CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	DeleteSpace(ctx context.Context, id uint) error
	GetSpaceTypes(ctx context.Context) ([]domain.SpaceType, error)
	CreateSpaceType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error)
	UpdateSpaceType(ctx context.Context, spaceType domain.SpaceType) (domain.SpaceType, error)
}

type SpaceHandler struct {
	svc SpaceService

	// invalidate drops the cached catalog responses after admin writes.
	invalidate func(ctx context.Context)
}

func NewSpaceHandler(svc SpaceService, invalidate func(ctx context.Context)) *SpaceHandler {
	if invalidate == nil {
		invalidate = func(context.Context) {}
	}

	return &SpaceHandler{
		svc:        svc,
		invalidate: invalidate,
	}
}

// HandleGetSpaces godoc
// @Summary      List active spaces
// @Tags         espacios
// @Produce      json
// @Success      200 {array}  domain.Space
// @Failure      500 {object} response.Err
// @Router       /espacios [get]
func (h *SpaceHandler) HandleGetSpaces(ctx *gin.Context) {
	spaces, err := h.svc.GetSpaces(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSpaces -> h.svc.GetSpaces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, spaces)
}

// HandleGetSpace godoc
// @Summary      Get one space
// @Tags         espacios
// @Produce      json
// @Param        spaceID path     int true "space ID"
// @Success      200     {object} domain.Space
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios/{spaceID} [get]
func (h *SpaceHandler) HandleGetSpace(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("spaceID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid space ID")))

		return
	}

	space, err := h.svc.GetSpace(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("space", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetSpace -> h.svc.GetSpace -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, space)
}

// HandleCreateSpace godoc
// @Summary      Create a space
// @Tags         espacios
// @Accept       json
// @Produce      json
// @Param        request body     request.CreateSpaceRequest true "request body"
// @Success      201     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      403     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios [post]
// @Security     BearerAuth
func (h *SpaceHandler) HandleCreateSpace(ctx *gin.Context) {
	var req request.CreateSpaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateSpace(ctx.Request.Context(), domain.Space{
		Name:            req.Name,
		TypeID:          req.TypeID,
		Capacity:        req.Capacity,
		Location:        req.Location,
		Description:     req.Description,
		OpeningTime:     req.OpeningTime,
		ClosingWeekday:  req.ClosingWeekday,
		ClosingSaturday: req.ClosingSaturday,
	})
	if err != nil {
		h.renderSpaceErr(ctx, "v1.HandleCreateSpace", err)

		return
	}

	h.invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, response.Message{Message: "space created", Data: created})
}

// HandleUpdateSpace godoc
// @Summary      Update a space
// @Tags         espacios
// @Accept       json
// @Produce      json
// @Param        spaceID path     int                        true "space ID"
// @Param        request body     request.UpdateSpaceRequest true "request body"
// @Success      200     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      403     {object} response.Err
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios/{spaceID} [put]
// @Security     BearerAuth
func (h *SpaceHandler) HandleUpdateSpace(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("spaceID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid space ID")))

		return
	}

	var req request.UpdateSpaceRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateSpace(ctx.Request.Context(), domain.Space{
		ID:              uint(id),
		Name:            req.Name,
		TypeID:          req.TypeID,
		Capacity:        req.Capacity,
		Location:        req.Location,
		Active:          *req.Active,
		Description:     req.Description,
		OpeningTime:     req.OpeningTime,
		ClosingWeekday:  req.ClosingWeekday,
		ClosingSaturday: req.ClosingSaturday,
	})
	if err != nil {
		h.renderSpaceErr(ctx, "v1.HandleUpdateSpace", err)

		return
	}

	h.invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, response.Message{Message: "space updated", Data: updated})
}

// HandleDeleteSpace godoc
// @Summary      Delete a space
// @Description  Fails while any pending or confirmed reservation references the space.
// @Tags         espacios
// @Produce      json
// @Param        spaceID path     int true "space ID"
// @Success      200     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      403     {object} response.Err
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios/{spaceID} [delete]
// @Security     BearerAuth
func (h *SpaceHandler) HandleDeleteSpace(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("spaceID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid space ID")))

		return
	}

	if err = h.svc.DeleteSpace(ctx.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrSpaceHasReservations):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSpaceHasReservations))
		case errors.Is(err, service.ErrSpaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("space", "ID", id))
		default:
			err = fmt.Errorf("v1.HandleDeleteSpace -> h.svc.DeleteSpace -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	h.invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, response.Message{Message: "space deleted"})
}

// HandleGetSpaceTypes godoc
// @Summary      List space types
// @Tags         espacios
// @Produce      json
// @Success      200 {array}  domain.SpaceType
// @Failure      500 {object} response.Err
// @Router       /espacios/tipos [get]
func (h *SpaceHandler) HandleGetSpaceTypes(ctx *gin.Context) {
	types, err := h.svc.GetSpaceTypes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSpaceTypes -> h.svc.GetSpaceTypes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, types)
}

// HandleCreateSpaceType godoc
// @Summary      Create a space type
// @Tags         espacios
// @Accept       json
// @Produce      json
// @Param        request body     request.SpaceTypeRequest true "request body"
// @Success      201     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      403     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios/tipos [post]
// @Security     BearerAuth
func (h *SpaceHandler) HandleCreateSpaceType(ctx *gin.Context) {
	var req request.SpaceTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateSpaceType(ctx.Request.Context(), domain.SpaceType{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSpaceType -> h.svc.CreateSpaceType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusCreated, response.Message{Message: "space type created", Data: created})
}

// HandleUpdateSpaceType godoc
// @Summary      Update a space type
// @Tags         espacios
// @Accept       json
// @Produce      json
// @Param        typeID  path     int                      true "space type ID"
// @Param        request body     request.SpaceTypeRequest true "request body"
// @Success      200     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      403     {object} response.Err
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /espacios/tipos/{typeID} [put]
// @Security     BearerAuth
func (h *SpaceHandler) HandleUpdateSpaceType(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("typeID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid space type ID")))

		return
	}

	var req request.SpaceTypeRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateSpaceType(ctx.Request.Context(), domain.SpaceType{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrSpaceTypeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("space type", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateSpaceType -> h.svc.UpdateSpaceType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, response.Message{Message: "space type updated", Data: updated})
}

func (h *SpaceHandler) renderSpaceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrSpaceTypeNotFound),
		errors.Is(err, service.ErrInvalidOperatingHours),
		errors.Is(err, service.ErrInvalidClockValue):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrSpaceNotFound):
		response.RenderErr(ctx, response.ErrNotFound("space", "ID", ctx.Param("spaceID")))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
