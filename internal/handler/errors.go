// Package handler exposes the HTTP endpoints. Handlers validate the
// request shape, call into the services and map the returned typed
// failures to transport responses; the rules themselves live in
// internal/service.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
)

// writeError maps a domain failure onto an HTTP response. Rule
// violations become 4xx with their own message; anything unclassified
// is logged in full and answered with an opaque 500.
func writeError(c echo.Context, log zerolog.Logger, err error) error {
	var (
		notFound *domain.NotFoundError
		valErr   *domain.ValidationError
		dateErr  *domain.DateFormatError
		sortErr  *domain.InvalidSortFieldError
	)
	switch {
	case errors.As(err, &notFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound.Error()})
	case errors.As(err, &valErr),
		errors.As(err, &dateErr),
		errors.As(err, &sortErr),
		errors.Is(err, domain.ErrInvalidPagination),
		errors.Is(err, domain.ErrDateOverlap),
		errors.Is(err, domain.ErrReservationDates),
		errors.Is(err, domain.ErrInvalidEventUpdate),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrDuplicateRegistration),
		errors.Is(err, domain.ErrInactiveEvent),
		errors.Is(err, domain.ErrStudentIDTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
