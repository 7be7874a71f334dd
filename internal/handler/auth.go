package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yerassyl/event-reservation/internal/domain"
	"github.com/yerassyl/event-reservation/internal/middleware"
	"github.com/yerassyl/event-reservation/internal/model"
	"github.com/yerassyl/event-reservation/internal/service"
	"github.com/yerassyl/event-reservation/internal/session"
)

// AuthHandler serves registration, login, logout and the current-user
// lookup. Identity is session-based: a successful register or login
// issues an opaque token stored server-side and handed to the client in
// a cookie.
type AuthHandler struct {
	Users    *service.UserService
	Sessions *session.Store
	Log      zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *service.UserService, sessions *session.Store, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	StudentID string `json:"studentId" validate:"required,min=1,max=50"`
	Name      string `json:"name" validate:"required,min=2,max=50"`
	Surname   string `json:"surname" validate:"required,min=2,max=50"`
	Password  string `json:"password" validate:"required,min=4,max=100"`
}

type loginReq struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type userResp struct {
	ID        int64  `json:"id"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
}

func toUserResp(u *model.User) userResp {
	return userResp{ID: u.ID, StudentID: u.StudentID, Name: u.Name, Surname: u.Surname}
}

// Register handles POST /api/v1/register: create the user and open a
// session immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return writeError(c, h.Log, &domain.ValidationError{Field: "registration", Reason: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Register(ctx, service.RegisterInput{
		StudentID: req.StudentID,
		Name:      req.Name,
		Surname:   req.Surname,
		Password:  req.Password,
	})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if err := h.openSession(ctx, c, u.ID); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Login handles POST /api/v1/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return writeError(c, h.Log, &domain.ValidationError{Field: "login", Reason: "studentId and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Login(ctx, req.StudentID, req.Password)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if err := h.openSession(ctx, c, u.ID); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// CurrentUser handles GET /api/v1/user/current. Without a valid session
// it answers null, mirroring the original API, rather than erroring.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusOK, nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.CurrentUser(ctx, userID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Logout handles POST /api/v1/logout: destroy the session and expire
// the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && h.Sessions != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		if err := h.Sessions.Destroy(ctx, cookie.Value); err != nil {
			h.Log.Warn().Err(err).Msg("could not destroy session")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// openSession issues a token for the user and sets the session cookie.
func (h *AuthHandler) openSession(ctx context.Context, c echo.Context, userID int64) error {
	if h.Sessions == nil {
		return domain.ErrSessionRequired
	}
	token, err := h.Sessions.Create(ctx, userID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Sessions.TTL()),
		HttpOnly: true,
	})
	return nil
}
