package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/middleware"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// FollowController handles follow and unfollow actions.
type FollowController struct {
	followService services.FollowService
	renderer      *views.Renderer
}

// NewFollowController creates a new FollowController
func NewFollowController(followService services.FollowService, renderer *views.Renderer) *FollowController {
	return &FollowController{
		followService: followService,
		renderer:      renderer,
	}
}

// Follow creates a follow edge to the profiled author and returns to
// the profile. A self-follow attempt changes nothing and still
// redirects.
func (c *FollowController) Follow(ctx *gin.Context) {
	username := ctx.Param("username")
	viewer := middleware.ViewerFrom(ctx)

	err := c.followService.Follow(ctx, viewer, username)
	if err != nil && !errors.Is(err, apperrors.ErrSelfFollow) {
		handlePageError(ctx, c.renderer, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/"+username+"/")
}

// Unfollow removes the follow edge to the profiled author and returns
// to the profile. Removing a missing edge changes nothing.
func (c *FollowController) Unfollow(ctx *gin.Context) {
	username := ctx.Param("username")
	viewer := middleware.ViewerFrom(ctx)

	if err := c.followService.Unfollow(ctx, viewer, username); err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/"+username+"/")
}
