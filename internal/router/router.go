package router

import (
	"io/fs"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"spendlog/internal/config"
	"spendlog/internal/handler"
	"spendlog/internal/service"
	"spendlog/internal/session"
	"spendlog/web"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	expenseHandler *handler.ExpenseHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Static assets from the embedded FS
	if static, err := fs.Sub(web.StaticFS, "static"); err == nil {
		e.StaticFS("/static", static)
	}

	// Public routes
	e.GET("/", authHandler.Home)
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signup", authHandler.Signup)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)

	// Secured routes: the cookie token must carry a valid signature, and the
	// session behind it must still exist server-side.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + session.CookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	}), resolveSession(authService))

	secured.GET("/logout", authHandler.Logout)
	secured.GET("/dashboard", expenseHandler.Dashboard)
	secured.POST("/dashboard", expenseHandler.AddExpense)
	secured.POST("/delete/:id", expenseHandler.DeleteExpense)
	secured.GET("/chart-data", expenseHandler.ChartData)
}

// resolveSession loads the user behind the session cookie into the request
// context, bouncing revoked or stale sessions back to the login page.
func resolveSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			user, sessionID, err := authService.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(handler.ContextUserKey, user)
			c.Set(handler.ContextSessionKey, sessionID)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
