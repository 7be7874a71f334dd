package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/feedback"
	"github.com/yerassyl/event-reservation/internal/model"
)

// FeedbackHandler serves the feedback endpoints backed by the per-day
// file store.
type FeedbackHandler struct {
	Store *feedback.Store
	Log   zerolog.Logger
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(store *feedback.Store, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{Store: store, Log: log}
}

type feedbackReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /api/v1/feedback and returns {"success": true}.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return writeError(c, h.Log, &domain.ValidationError{Field: "feedback", Reason: err.Error()})
	}

	entry := model.FeedbackEntry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Store.Append(entry); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListAll handles GET /api/v1/feedback, newest entries first.
func (h *FeedbackHandler) ListAll(c echo.Context) error {
	entries, err := h.Store.ListAll()
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, entries)
}
