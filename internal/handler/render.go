package handler

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"spendlog/web"
)

// Context keys set by the session middleware.
const (
	// ContextUserKey holds the authenticated *model.User.
	ContextUserKey = "current_user"
	// ContextSessionKey holds the server-side session ID.
	ContextSessionKey = "session_id"
)

// TemplateRenderer implements echo.Renderer over the embedded templates.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates at startup.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
