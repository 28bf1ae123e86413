// Package views renders the server-side HTML pages. Pages are rendered
// into a buffer first so the home feed can store the exact bytes in the
// fragment cache and serve them verbatim on a hit.
package views

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/pkg/logger"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template matching pattern.
func NewRenderer(pattern string) (*Renderer, error) {
	templates, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render executes a page template into bytes.
func (r *Renderer) Render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// HTML renders a page template and writes it as the response.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data interface{}) {
	body, err := r.Render(name, data)
	if err != nil {
		logger.Error().Err(err).Str("template", name).Msg("template rendering failed")
		r.ServerError(c)
		return
	}
	c.Data(status, "text/html; charset=utf-8", body)
}

// NotFound renders the 404 page for the requested path.
func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "404.html", gin.H{
		"Path": c.Request.URL.Path,
	})
}

// ServerError renders the 500 page. Rendering failures at this point
// fall back to a plain status so the response is never empty.
func (r *Renderer) ServerError(c *gin.Context) {
	body, err := r.Render("500.html", nil)
	if err != nil {
		c.String(http.StatusInternalServerError, "server error")
		return
	}
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", body)
}
