package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/auth"
)

// LoginPath is the endpoint anonymous viewers are sent to when they hit
// an auth-required page. The originally requested path travels in the
// next parameter.
const LoginPath = "/auth/login/"

const viewerContextKey = "viewer"

// ViewerMiddleware resolves the request's viewer from the session cookie.
type ViewerMiddleware struct {
	sessions *auth.SessionService
}

// NewViewerMiddleware creates a new ViewerMiddleware
func NewViewerMiddleware(sessions *auth.SessionService) *ViewerMiddleware {
	return &ViewerMiddleware{sessions: sessions}
}

// ResolveViewer populates the request's Viewer from the session cookie.
// Any failure (missing cookie, invalid or expired token) resolves to
// the anonymous viewer; this middleware never rejects a request.
func (m *ViewerMiddleware) ResolveViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := models.Anonymous()

		if token, err := c.Cookie(m.sessions.CookieName()); err == nil && token != "" {
			if claims, err := m.sessions.ValidateSession(token); err == nil {
				viewer = models.AuthenticatedViewer(claims.UserID, claims.Username)
			}
		}

		c.Set(viewerContextKey, viewer)
		c.Next()
	}
}

// LoginRequired redirects anonymous viewers to the login page with the
// originally requested path in the next parameter.
func (m *ViewerMiddleware) LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := ViewerFrom(c)
		if !viewer.Authenticated {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ViewerFrom returns the resolved viewer for the request.
func ViewerFrom(c *gin.Context) models.Viewer {
	if v, exists := c.Get(viewerContextKey); exists {
		if viewer, ok := v.(models.Viewer); ok {
			return viewer
		}
	}
	return models.Anonymous()
}

// RedirectToLogin sends the viewer to the login page, preserving the
// originally requested path.
func RedirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, LoginPath+"?next="+next)
}
