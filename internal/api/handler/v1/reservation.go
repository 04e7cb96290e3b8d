package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/espacios-app/reservas-api/internal/api/handler/v1/request"
	"github.com/espacios-app/reservas-api/internal/api/handler/v1/response"
	"github.com/espacios-app/reservas-api/internal/domain"
	"github.com/espacios-app/reservas-api/internal/service"
)

const dateLayout = "2006-01-02"

type ReservationService interface {
	GetOwnReservations(ctx context.Context, userID uint) ([]domain.Reservation, error)
	GetAllReservations(ctx context.Context) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, id uint, actor domain.User, patch domain.Reservation) (domain.Reservation, error)
	CancelReservation(ctx context.Context, id uint, actor domain.User) (domain.Reservation, error)
	GetAvailability(ctx context.Context, spaceID uint, date time.Time) (domain.DayAvailability, error)
}

type ReservationHandler struct {
	svc  ReservationService
	uSvc UserService
}

func NewReservationHandler(svc ReservationService, uSvc UserService) *ReservationHandler {
	return &ReservationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetMyReservations godoc
// @Summary      List the authenticated user's reservations
// @Tags         reservas
// @Produce      json
// @Success      200 {array}  domain.Reservation
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservas/mis-reservas [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetMyReservations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	reservations, err := h.svc.GetOwnReservations(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyReservations -> h.svc.GetOwnReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleGetAllReservations godoc
// @Summary      List every reservation
// @Tags         reservas
// @Produce      json
// @Success      200 {array}  domain.Reservation
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /reservas [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetAllReservations(ctx *gin.Context) {
	reservations, err := h.svc.GetAllReservations(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAllReservations -> h.svc.GetAllReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleCreateReservation godoc
// @Summary      Create a reservation
// @Description  The slot must be inside the space's operating hours and free of overlapping non-cancelled reservations.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        request body     request.CreateReservationRequest true "request body"
// @Success      201     {object} response.Message
// @Failure      400     {object} response.Err
// @Failure      401     {object} response.Err
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /reservas [post]
// @Security     BearerAuth
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid date, expected YYYY-MM-DD")))

		return
	}

	created, err := h.svc.CreateReservation(ctx.Request.Context(), domain.Reservation{
		UserID:    user.ID,
		SpaceID:   req.SpaceID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		h.renderReservationErr(ctx, "v1.HandleCreateReservation", err)

		return
	}

	ctx.JSON(http.StatusCreated, response.Message{Message: "reservation created", Data: created})
}

// HandleUpdateReservation godoc
// @Summary      Update a reservation
// @Description  Owner or admin only. Date and time changes re-run the availability check.
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Param        reservationID path     int                              true "reservation ID"
// @Param        request       body     request.UpdateReservationRequest true "request body"
// @Success      200           {object} response.Message
// @Failure      400           {object} response.Err
// @Failure      401           {object} response.Err
// @Failure      403           {object} response.Err
// @Failure      404           {object} response.Err
// @Failure      500           {object} response.Err
// @Router       /reservas/{reservationID} [put]
// @Security     BearerAuth
func (h *ReservationHandler) HandleUpdateReservation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := strconv.ParseUint(ctx.Param("reservationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid reservation ID")))

		return
	}

	var req request.UpdateReservationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	patch := domain.Reservation{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid date, expected YYYY-MM-DD")))

			return
		}
		patch.Date = date
	}

	updated, err := h.svc.UpdateReservation(ctx.Request.Context(), uint(id), user, patch)
	if err != nil {
		h.renderReservationErr(ctx, "v1.HandleUpdateReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "reservation updated", Data: updated})
}

// HandleCancelReservation godoc
// @Summary      Cancel a reservation
// @Description  Owner or admin only. Cancellation is a status change; the row is kept.
// @Tags         reservas
// @Produce      json
// @Param        reservationID path     int true "reservation ID"
// @Success      200           {object} response.Message
// @Failure      400           {object} response.Err
// @Failure      401           {object} response.Err
// @Failure      403           {object} response.Err
// @Failure      404           {object} response.Err
// @Failure      500           {object} response.Err
// @Router       /reservas/{reservationID} [delete]
// @Security     BearerAuth
func (h *ReservationHandler) HandleCancelReservation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := strconv.ParseUint(ctx.Param("reservationID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid reservation ID")))

		return
	}

	cancelled, err := h.svc.CancelReservation(ctx.Request.Context(), uint(id), user)
	if err != nil {
		h.renderReservationErr(ctx, "v1.HandleCancelReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, response.Message{Message: "reservation cancelled", Data: cancelled})
}

// HandleGetAvailability godoc
// @Summary      Get a space's availability for one date
// @Tags         reservas
// @Produce      json
// @Param        spaceID path     int    true "space ID"
// @Param        date    path     string true "date (YYYY-MM-DD)"
// @Success      200     {object} domain.DayAvailability
// @Failure      400     {object} response.Err
// @Failure      401     {object} response.Err
// @Failure      404     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /reservas/disponibilidad/{spaceID}/{date} [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetAvailability(ctx *gin.Context) {
	spaceID, err := strconv.ParseUint(ctx.Param("spaceID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid space ID")))

		return
	}

	date, err := time.Parse(dateLayout, ctx.Param("date"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid date, expected YYYY-MM-DD")))

		return
	}

	availability, err := h.svc.GetAvailability(ctx.Request.Context(), uint(spaceID), date)
	if err != nil {
		if errors.Is(err, service.ErrSpaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("space", "ID", spaceID))

			return
		}

		err = fmt.Errorf("v1.HandleGetAvailability -> h.svc.GetAvailability -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, availability)
}

func (h *ReservationHandler) renderReservationErr(ctx *gin.Context, op string, err error) {
	var hoursErr *service.OutsideHoursError

	switch {
	case errors.Is(err, service.ErrSpaceUnavailable):
		response.RenderErr(ctx, &response.Err{StatusCode: http.StatusNotFound, Msg: err.Error()})
	case errors.Is(err, service.ErrReservationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("reservation", "ID", ctx.Param("reservationID")))
	case errors.Is(err, service.ErrNotReservationOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.As(err, &hoursErr),
		errors.Is(err, service.ErrDateInPast),
		errors.Is(err, service.ErrEndNotAfterStart),
		errors.Is(err, service.ErrNoSundayService),
		errors.Is(err, service.ErrReservationOverlap),
		errors.Is(err, service.ErrReservationCancelled),
		errors.Is(err, service.ErrInvalidClockValue):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
