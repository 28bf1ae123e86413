package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/middleware"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// PostController handles post creation, viewing and editing.
type PostController struct {
	postService services.PostService
	renderer    *views.Renderer
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, renderer *views.Renderer) *PostController {
	return &PostController{
		postService: postService,
		renderer:    renderer,
	}
}

// postPath builds the canonical URL of a post view.
func postPath(username string, postID int64) string {
	return fmt.Sprintf("/%s/%d/", username, postID)
}

// parsePostInput reads the submitted post form fields.
func parsePostInput(ctx *gin.Context) services.PostInput {
	input := services.PostInput{
		Text: ctx.PostForm("text"),
	}

	if groupStr := ctx.PostForm("group"); groupStr != "" {
		if groupID, err := strconv.ParseInt(groupStr, 10, 64); err == nil {
			input.GroupID = &groupID
		}
	}

	// Image is optional; a missing file is not an error.
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		input.Image = fileHeader
	}

	return input
}

// NewPostForm serves the post creation form.
func (c *PostController) NewPostForm(ctx *gin.Context) {
	groups, err := c.postService.GetGroups(ctx)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "post_new.html", gin.H{
		"Groups": groups,
		"Viewer": middleware.ViewerFrom(ctx),
	})
}

// CreatePost handles post form submission. A valid submission creates
// the post and redirects home; a failed one re-renders the form with
// field messages and writes nothing.
func (c *PostController) CreatePost(ctx *gin.Context) {
	viewer := middleware.ViewerFrom(ctx)
	input := parsePostInput(ctx)

	_, err := c.postService.CreatePost(ctx, viewer, input)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			groups, groupsErr := c.postService.GetGroups(ctx)
			if groupsErr != nil {
				handlePageError(ctx, c.renderer, groupsErr)
				return
			}
			c.renderer.HTML(ctx, http.StatusOK, "post_new.html", gin.H{
				"Groups": groups,
				"Viewer": viewer,
				"Text":   input.Text,
				"Errors": validationMessages(err),
			})
			return
		}
		handlePageError(ctx, c.renderer, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/")
}

// Detail serves a single post with its comments and the comment form.
func (c *PostController) Detail(ctx *gin.Context) {
	username := ctx.Param("username")
	postID, err := strconv.ParseInt(ctx.Param("postID"), 10, 64)
	if err != nil {
		c.renderer.NotFound(ctx)
		return
	}

	post, comments, err := c.postService.GetPost(ctx, username, postID)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "post.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Viewer":   middleware.ViewerFrom(ctx),
	})
}

// EditPostForm serves the edit form. A viewer that is not the author
// is sent back to the post view.
func (c *PostController) EditPostForm(ctx *gin.Context) {
	username := ctx.Param("username")
	postID, err := strconv.ParseInt(ctx.Param("postID"), 10, 64)
	if err != nil {
		c.renderer.NotFound(ctx)
		return
	}

	post, _, err := c.postService.GetPost(ctx, username, postID)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	viewer := middleware.ViewerFrom(ctx)
	if post.AuthorID != viewer.UserID {
		ctx.Redirect(http.StatusFound, postPath(username, postID))
		return
	}

	groups, err := c.postService.GetGroups(ctx)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "post_edit.html", gin.H{
		"Post":   post,
		"Groups": groups,
		"Viewer": viewer,
		"Text":   post.Text,
	})
}

// EditPost handles edit form submission. Non-authors are redirected to
// the post view without any mutation.
func (c *PostController) EditPost(ctx *gin.Context) {
	username := ctx.Param("username")
	postID, err := strconv.ParseInt(ctx.Param("postID"), 10, 64)
	if err != nil {
		c.renderer.NotFound(ctx)
		return
	}

	viewer := middleware.ViewerFrom(ctx)
	input := parsePostInput(ctx)

	post, err := c.postService.EditPost(ctx, viewer, username, postID, input)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPermissionDenied):
			ctx.Redirect(http.StatusFound, postPath(username, postID))
		case errors.Is(err, apperrors.ErrValidationFailed):
			groups, groupsErr := c.postService.GetGroups(ctx)
			if groupsErr != nil {
				handlePageError(ctx, c.renderer, groupsErr)
				return
			}
			c.renderer.HTML(ctx, http.StatusOK, "post_edit.html", gin.H{
				"Post":   gin.H{"ID": postID, "Author": gin.H{"Username": username}},
				"Groups": groups,
				"Viewer": viewer,
				"Text":   input.Text,
				"Errors": validationMessages(err),
			})
		default:
			handlePageError(ctx, c.renderer, err)
		}
		return
	}

	ctx.Redirect(http.StatusFound, postPath(username, post.ID))
}
