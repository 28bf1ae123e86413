package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/middleware"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/logger"
)

const htmlContentType = "text/html; charset=utf-8"

// handlePageError resolves a service error into a rendered response.
// Unresolved resources render the 404 page, missing authentication
// redirects to login, everything else renders the 500 page. No error
// is ever fatal to the process.
func handlePageError(c *gin.Context, renderer *views.Renderer, err error) {
	switch {
	case apperrors.IsNotFound(err):
		renderer.NotFound(c)
	case errors.Is(err, apperrors.ErrUnauthorized):
		middleware.RedirectToLogin(c)
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		renderer.ServerError(c)
	}
}

// validationMessages extracts field-level messages from a validation
// error for form re-rendering. A non-validation error yields nil.
func validationMessages(err error) map[string]string {
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		return nil
	}

	messages := map[string]string{}
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Field != "" {
		messages[customErr.Field] = customErr.Message
	} else {
		messages["form"] = err.Error()
	}
	return messages
}
