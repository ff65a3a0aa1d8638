package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grandline/theories/internal/api/metrics"
	"github.com/grandline/theories/internal/api/middleware"
	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

// AuthHandler serves the register, login, logout and profile pages.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionManager
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type registerForm struct {
	Username string `form:"username" validate:"required,min=3,max=30"`
	Password string `form:"password" validate:"required,min=5"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", Page{
		Title:    "Register",
		Flash:    PopFlash(c),
		Username: ctxUsername(c),
	})
}

// Register handles POST /register. Success starts a session and lands on the
// new user's profile; a taken username flashes and returns to the form.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		SetFlash(c, "Invalid submission")
		return c.Redirect(http.StatusSeeOther, "/register")
	}
	if err := c.Validate(&form); err != nil {
		SetFlash(c, err.Error())
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	user, err := h.auth.Register(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			SetFlash(c, "Username already exists")
			return c.Redirect(http.StatusSeeOther, "/register")
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			SetFlash(c, "Invalid submission")
			return c.Redirect(http.StatusSeeOther, "/register")
		}
		return err
	}

	if err := h.startSession(c, user.Username); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	SetFlash(c, "Registration Successful!")
	return c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", Page{
		Title:    "Log In",
		Flash:    PopFlash(c),
		Username: ctxUsername(c),
	})
}

// Login handles POST /login. Unknown usernames and wrong passwords produce
// the same message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		SetFlash(c, "Invalid submission")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := c.Validate(&form); err != nil {
		SetFlash(c, "Incorrect Username and/or Password")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	user, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			SetFlash(c, "Incorrect Username and/or Password")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	if err := h.startSession(c, user.Username); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	// The welcome greets the name as typed; the session identity stays
	// lower-cased.
	SetFlash(c, fmt.Sprintf("Welcome, %s", form.Username))
	return c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// Logout handles GET /logout. Calling it without an active session is a
// no-op apart from the flash.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	SetFlash(c, "You have been logged out")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Profile handles GET,POST /profile/:username. The displayed identity is
// re-derived from the store via the session, never from the route parameter.
func (h *AuthHandler) Profile(c echo.Context) error {
	user, theories, err := h.auth.Profile(c.Request().Context(), ctxUsername(c))
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "profile.html", Page{
		Title:    user.Username,
		Flash:    PopFlash(c),
		Username: user.Username,
		Theories: theories,
	})
}

func (h *AuthHandler) startSession(c echo.Context, username string) error {
	token, err := h.sessions.Issue(username)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, h.sessions.TTL())
	return nil
}
