package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/middleware"
	"github.com/yerassyl/event-reservation/internal/model"
	"github.com/yerassyl/event-reservation/internal/service"
)

// ReservationHandler serves the reservation endpoints. Save sits behind
// the session middleware; the resolved user id is handed to the service
// as an explicit parameter.
type ReservationHandler struct {
	Reservations *service.ReservationService
	Log          zerolog.Logger
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(reservations *service.ReservationService, log zerolog.Logger) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations, Log: log}
}

type reservationReq struct {
	EventID  int64   `json:"eventId" validate:"required,gt=0"`
	CheckIn  string  `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Status   bool    `json:"status"`
}

type reservationResp struct {
	ID       int64   `json:"id"`
	EventID  int64   `json:"eventId"`
	UserID   int64   `json:"userId"`
	CheckIn  string  `json:"checkIn"`
	CheckOut *string `json:"checkOut,omitempty"`
	Status   bool    `json:"status"`
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID:       r.ID,
		EventID:  r.EventID,
		UserID:   r.UserID,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Status:   r.Status,
	}
}

// List handles GET /api/v1/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reservations, err := h.Reservations.GetAllReservations(ctx)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out := make([]reservationResp, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResp(&reservations[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/v1/reservation/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.Reservations.GetReservation(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// Save handles POST /api/v1/reservation and returns {"id": n}. The
// session middleware guarantees a user id on the context.
func (h *ReservationHandler) Save(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}

	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res := &model.Reservation{
		EventID:  req.EventID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   req.Status,
	}
	id, err := h.Reservations.SaveReservation(ctx, res, userID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Delete handles DELETE /api/v1/reservation/:id and returns
// {"success": bool}.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.Reservations.DeleteReservation(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": ok})
}
