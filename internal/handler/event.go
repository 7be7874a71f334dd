package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/dateutil"
	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/model"
	"github.com/yerassyl/event-reservation/internal/service"
)

// validate checks the struct tags on request DTOs across all handlers.
var validate = validator.New()

const dbTimeout = 5 * time.Second

// Default paging used by the paged listing when parameters are omitted,
// matching the original API defaults.
const (
	defaultPageNumber = 0
	defaultPageSize   = 10
	defaultSortBy     = "id"
)

// EventHandler serves the event endpoints.
type EventHandler struct {
	Events *service.EventService
	Log    zerolog.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService, log zerolog.Logger) *EventHandler {
	return &EventHandler{Events: events, Log: log}
}

// ----- DTOs -----

type eventReq struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" validate:"required,min=3,max=40"`
	Type          string `json:"type" validate:"required"`
	Description   string `json:"description" validate:"required"`
	AvailableFrom string `json:"availableFrom"`
	AvailableTo   string `json:"availableTo"`
	Status        bool   `json:"status"`
}

type eventResp struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	AvailableFrom *string `json:"availableFrom"`
	AvailableTo   *string `json:"availableTo"`
	Status        bool    `json:"status"`
}

func toEventResp(e *model.Event) eventResp {
	return eventResp{
		ID:            e.ID,
		Name:          e.Name,
		Type:          e.Type,
		Description:   e.Description,
		AvailableFrom: e.AvailableFrom,
		AvailableTo:   e.AvailableTo,
		Status:        e.Status,
	}
}

func toEventList(events []model.Event) []eventResp {
	out := make([]eventResp, 0, len(events))
	for i := range events {
		out = append(out, toEventResp(&events[i]))
	}
	return out
}

// validateEventReq applies the shape rules shared by POST and PATCH:
// tag validation, the type allow-list and date well-formedness.
func validateEventReq(req *eventReq) error {
	if err := validate.Struct(req); err != nil {
		return &domain.ValidationError{Field: "event", Reason: err.Error()}
	}
	if !model.ValidEventType(req.Type) {
		return &domain.ValidationError{Field: "type", Reason: "must be one of CONCERT, WORKSHOP, CONFERENCE"}
	}
	for _, d := range []string{req.AvailableFrom, req.AvailableTo} {
		if d == "" {
			continue
		}
		if _, err := dateutil.ParseDate(d); err != nil {
			return err
		}
	}
	return nil
}

func (req *eventReq) toModel() *model.Event {
	e := &model.Event{
		ID:          req.ID,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.AvailableFrom != "" {
		e.AvailableFrom = &req.AvailableFrom
	}
	if req.AvailableTo != "" {
		e.AvailableTo = &req.AvailableTo
	}
	return e
}

// ----- Endpoints -----

// List handles GET /api/v1/events.
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.GetAllEvents(ctx)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// PagedList handles GET /api/v1/eventPagedList. Out-of-range pages are
// an empty array, never an error.
func (h *EventHandler) PagedList(c echo.Context) error {
	pageNumber, err := queryInt(c, "pageNumber", defaultPageNumber)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.GetEventPagedList(ctx, pageNumber, pageSize, sortBy)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// Get handles GET /api/v1/event/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	event, err := h.Events.GetEvent(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toEventResp(event))
}

// AvailabilitySearch handles GET /api/v1/events/availabilitySearch.
func (h *EventHandler) AvailabilitySearch(c echo.Context) error {
	dateFrom := c.QueryParam("dateFrom")
	dateTo := c.QueryParam("dateTo")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.GetAvailable(ctx, dateFrom, dateTo)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toEventList(events))
}

// Save handles POST /api/v1/event and returns {"id": n}.
func (h *EventHandler) Save(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validateEventReq(&req); err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Events.SaveEvent(ctx, req.toModel())
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// Patch handles PATCH /api/v1/event and returns {"success": bool}.
func (h *EventHandler) Patch(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ID <= 0 {
		return writeError(c, h.Log, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
	}
	if err := validateEventReq(&req); err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.Events.PatchEvent(ctx, req.toModel())
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": ok})
}

// Delete handles DELETE /api/v1/event/:id and returns {"success": bool}.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ok, err := h.Events.DeleteEvent(ctx, id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": ok})
}

// ----- shared param helpers -----

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &domain.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return n, nil
}
