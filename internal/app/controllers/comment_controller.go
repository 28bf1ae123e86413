package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/middleware"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// CommentController handles comment submission.
type CommentController struct {
	commentService services.CommentService
	postService    services.PostService
	renderer       *views.Renderer
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService, postService services.PostService, renderer *views.Renderer) *CommentController {
	return &CommentController{
		commentService: commentService,
		postService:    postService,
		renderer:       renderer,
	}
}

// AddComment handles comment form submission. Success redirects back
// to the post view; a failed field constraint re-renders the post page
// with the message and writes nothing.
func (c *CommentController) AddComment(ctx *gin.Context) {
	username := ctx.Param("username")
	postID, err := strconv.ParseInt(ctx.Param("postID"), 10, 64)
	if err != nil {
		c.renderer.NotFound(ctx)
		return
	}

	viewer := middleware.ViewerFrom(ctx)
	text := ctx.PostForm("text")

	_, err = c.commentService.AddComment(ctx, viewer, username, postID, text)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			post, comments, postErr := c.postService.GetPost(ctx, username, postID)
			if postErr != nil {
				handlePageError(ctx, c.renderer, postErr)
				return
			}
			c.renderer.HTML(ctx, http.StatusOK, "post.html", gin.H{
				"Post":     post,
				"Comments": comments,
				"Viewer":   viewer,
				"Text":     text,
				"Errors":   validationMessages(err),
			})
			return
		}
		handlePageError(ctx, c.renderer, err)
		return
	}

	ctx.Redirect(http.StatusFound, postPath(username, postID))
}
