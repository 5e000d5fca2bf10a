package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/service"
	"spendlog/internal/session"
)

// AuthHandler handles signup, login and logout pages.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// SignupRequest represents the signup form.
type SignupRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// FormView is the data passed to the signup and login templates.
type FormView struct {
	Error  string
	Notice string
}

// Home redirects to the dashboard when a valid session exists, else to login.
func (h *AuthHandler) Home(c echo.Context) error {
	if h.sessionValid(c) {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	return c.Redirect(http.StatusFound, "/login")
}

// SignupForm renders the signup page.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", FormView{})
}

// Signup handles the signup form submission.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "signup.html", FormView{Error: "Invalid form submission"})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "signup.html", FormView{Error: apperrors.ErrMissingFields.Error()})
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		switch err {
		case apperrors.ErrMissingFields, apperrors.ErrUsernameTaken:
			return c.Render(http.StatusOK, "signup.html", FormView{Error: err.Error()})
		default:
			logrus.WithError(err).Error("signup failed")
			return c.Render(http.StatusOK, "signup.html", FormView{Error: "An error occurred. Please try again."})
		}
	}

	return c.Redirect(http.StatusFound, "/login?created=1")
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	// Already logged in users go straight to the dashboard.
	if h.sessionValid(c) {
		return c.Redirect(http.StatusFound, "/dashboard")
	}
	view := FormView{}
	if c.QueryParam("created") != "" {
		view.Notice = "Account created. Please log in."
	}
	return c.Render(http.StatusOK, "login.html", view)
}

// Login handles the login form submission and opens a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", FormView{Error: "Invalid form submission"})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", FormView{Error: apperrors.ErrMissingFields.Error()})
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			return c.Render(http.StatusOK, "login.html", FormView{Error: err.Error()})
		}
		logrus.WithError(err).Error("login failed")
		return c.Render(http.StatusOK, "login.html", FormView{Error: "An error occurred. Please try again."})
	}

	h.setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout terminates the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			logrus.WithError(err).Warn("delete session failed")
		}
	}
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) sessionValid(c echo.Context) bool {
	cookie, err := c.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, _, err = h.authService.CurrentUser(c.Request().Context(), cookie.Value)
	return err == nil
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.Duration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
