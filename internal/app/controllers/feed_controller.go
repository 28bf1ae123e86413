package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/cache"
	"github.com/witlog/witlog/internal/middleware"
	"github.com/witlog/witlog/internal/pkg/helpers"
)

// FeedController serves the listing pages: home, group, profile and
// the followed feed.
type FeedController struct {
	feedService   services.FeedService
	followService services.FollowService
	fragments     cache.FragmentCache
	renderer      *views.Renderer
	indexTTL      time.Duration
}

// NewFeedController creates a new FeedController
func NewFeedController(
	feedService services.FeedService,
	followService services.FollowService,
	fragments cache.FragmentCache,
	renderer *views.Renderer,
	indexTTL time.Duration,
) *FeedController {
	return &FeedController{
		feedService:   feedService,
		followService: followService,
		fragments:     fragments,
		renderer:      renderer,
		indexTTL:      indexTTL,
	}
}

// Index serves the home feed. The default view (no query parameters)
// is fragment-cached under a fixed key: within the TTL the stored bytes
// are served verbatim even if posts were created since the render.
// Creating a post never invalidates the fragment; only TTL expiry or an
// explicit clear does.
func (c *FeedController) Index(ctx *gin.Context) {
	cacheable := ctx.Request.URL.RawQuery == ""

	if cacheable {
		if fragment, ok := c.fragments.Get(ctx, cache.IndexPageKey); ok {
			ctx.Data(http.StatusOK, htmlContentType, fragment)
			return
		}
	}

	page := helpers.ParsePageParam(ctx)
	feed, err := c.feedService.GlobalFeed(ctx, page)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	body, err := c.renderer.Render("index.html", gin.H{
		"Page": feed,
	})
	if err != nil {
		c.renderer.ServerError(ctx)
		return
	}

	if cacheable {
		c.fragments.Put(ctx, cache.IndexPageKey, body, c.indexTTL)
	}

	ctx.Data(http.StatusOK, htmlContentType, body)
}

// Group serves a community's feed.
func (c *FeedController) Group(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)

	group, feed, err := c.feedService.GroupFeed(ctx, ctx.Param("slug"), page)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "group.html", gin.H{
		"Group": group,
		"Page":  feed,
	})
}

// Profile serves an author's feed together with the viewer's follow
// status for that author.
func (c *FeedController) Profile(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)

	author, feed, err := c.feedService.AuthorFeed(ctx, ctx.Param("username"), page)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	viewer := middleware.ViewerFrom(ctx)
	following, err := c.followService.IsFollowing(ctx, viewer, author.ID)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	counts, err := c.followService.Counts(ctx, author.ID)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Page":      feed,
		"Viewer":    viewer,
		"Following": following,
		"Counts":    counts,
	})
}

// FollowIndex serves the viewer's personalized feed of followed authors.
func (c *FeedController) FollowIndex(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)
	viewer := middleware.ViewerFrom(ctx)

	feed, err := c.feedService.FollowedFeed(ctx, viewer, page)
	if err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}

	c.renderer.HTML(ctx, http.StatusOK, "follow.html", gin.H{
		"Page":   feed,
		"Viewer": viewer,
	})
}

// ClearCache drops every cached fragment. Operator-level action: the
// next home feed render recomputes from the content store.
func (c *FeedController) ClearCache(ctx *gin.Context) {
	if err := c.fragments.Clear(ctx); err != nil {
		handlePageError(ctx, c.renderer, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
