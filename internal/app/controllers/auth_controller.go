package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/auth"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	authService services.AuthService
	sessions    *auth.SessionService
	renderer    *views.Renderer
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, sessions *auth.SessionService, renderer *views.Renderer) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// SignupForm serves the registration form.
func (c *AuthController) SignupForm(ctx *gin.Context) {
	c.renderer.HTML(ctx, http.StatusOK, "signup.html", gin.H{
		"Next": ctx.Query("next"),
	})
}

// Signup handles registration form submission and logs the new user in.
func (c *AuthController) Signup(ctx *gin.Context) {
	username := ctx.PostForm("username")
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")
	next := safeNext(ctx.PostForm("next"))

	user, err := c.authService.Register(ctx, username, email, password)
	if err != nil {
		message := "could not create account"
		if errors.Is(err, apperrors.ErrValidationFailed) ||
			errors.Is(err, apperrors.ErrUsernameAlreadyExists) ||
			errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			message = err.Error()
		}
		c.renderer.HTML(ctx, http.StatusOK, "signup.html", gin.H{
			"Next":     ctx.PostForm("next"),
			"Username": username,
			"Email":    email,
			"Error":    message,
		})
		return
	}

	if err := c.setSessionCookie(ctx, user); err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}
	ctx.Redirect(http.StatusFound, next)
}

// LoginForm serves the login form, preserving the next parameter.
func (c *AuthController) LoginForm(ctx *gin.Context) {
	c.renderer.HTML(ctx, http.StatusOK, "login.html", gin.H{
		"Next": ctx.Query("next"),
	})
}

// Login handles login form submission.
func (c *AuthController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")
	next := safeNext(ctx.PostForm("next"))

	user, err := c.authService.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.renderer.HTML(ctx, http.StatusOK, "login.html", gin.H{
				"Next":     ctx.PostForm("next"),
				"Username": username,
				"Error":    "invalid username or password",
			})
			return
		}
		handlePageError(ctx, c.renderer, err)
		return
	}

	if err := c.setSessionCookie(ctx, user); err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}
	ctx.Redirect(http.StatusFound, next)
}

// Logout clears the session cookie.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(c.sessions.CookieName(), "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

// setSessionCookie issues a session token and attaches it as an
// HTTP-only cookie.
func (c *AuthController) setSessionCookie(ctx *gin.Context, user *models.User) error {
	token, err := c.sessions.IssueSession(user)
	if err != nil {
		return err
	}
	ctx.SetCookie(c.sessions.CookieName(), token, c.sessions.MaxAge(), "/", "", false, true)
	return nil
}
