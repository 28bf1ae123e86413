package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/witlog/witlog/internal/app/controllers"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	feedController *controllers.FeedController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	followController *controllers.FollowController,
	authController *controllers.AuthController,
	viewerMiddleware *middleware.ViewerMiddleware,
	renderer *views.Renderer,
) {
	// Every request resolves a viewer first, anonymous by default.
	router.Use(middleware.RequestLogger())
	router.Use(viewerMiddleware.ResolveViewer())

	// Home feed, fragment-cached.
	router.GET("/", feedController.Index)

	// Group feed.
	router.GET("/group/:slug/", feedController.Group)

	// Post creation.
	newPost := router.Group("/new", viewerMiddleware.LoginRequired())
	{
		newPost.GET("/", postController.NewPostForm)
		newPost.POST("/", postController.CreatePost)
	}

	// Personalized feed of followed authors.
	router.GET("/follow/", viewerMiddleware.LoginRequired(), feedController.FollowIndex)

	// Identity pages.
	auth := router.Group("/auth")
	{
		auth.GET("/signup/", authController.SignupForm)
		auth.POST("/signup/", authController.Signup)
		auth.GET("/login/", authController.LoginForm)
		auth.POST("/login/", authController.Login)
		auth.GET("/logout/", authController.Logout)
	}

	// Operator actions.
	router.POST("/internal/cache/clear", viewerMiddleware.LoginRequired(), feedController.ClearCache)

	// Usernames live at the URL root, where the router's tree cannot
	// hold them next to the static segments above. The whole
	// username-rooted family is dispatched from the fallback handler,
	// which doubles as the 404 for anything else.
	router.NoRoute(dispatchAuthorRoutes(
		feedController, postController, commentController, followController, renderer,
	))
}

// dispatchAuthorRoutes routes /{username}/..., falling through to the
// rendered 404 for anything that does not match.
func dispatchAuthorRoutes(
	feedController *controllers.FeedController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	followController *controllers.FollowController,
	renderer *views.Renderer,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		segments := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")

		switch len(segments) {
		case 1:
			// /{username}/
			if segments[0] != "" && c.Request.Method == http.MethodGet {
				setParams(c, segments[0], "")
				feedController.Profile(c)
				return
			}

		case 2:
			username, action := segments[0], segments[1]
			if c.Request.Method != http.MethodGet {
				break
			}
			switch action {
			case "follow":
				// /{username}/follow/
				if !requireViewer(c) {
					return
				}
				setParams(c, username, "")
				followController.Follow(c)
				return
			case "unfollow":
				// /{username}/unfollow/
				if !requireViewer(c) {
					return
				}
				setParams(c, username, "")
				followController.Unfollow(c)
				return
			default:
				// /{username}/{post_id}/
				if isPostID(action) {
					setParams(c, username, action)
					postController.Detail(c)
					return
				}
			}

		case 3:
			username, postID, action := segments[0], segments[1], segments[2]
			if !isPostID(postID) {
				break
			}
			switch action {
			case "edit":
				// /{username}/{post_id}/edit/
				if !requireViewer(c) {
					return
				}
				setParams(c, username, postID)
				switch c.Request.Method {
				case http.MethodGet:
					postController.EditPostForm(c)
					return
				case http.MethodPost:
					postController.EditPost(c)
					return
				}
			case "comment":
				// /{username}/{post_id}/comment/
				if c.Request.Method == http.MethodPost {
					if !requireViewer(c) {
						return
					}
					setParams(c, username, postID)
					commentController.AddComment(c)
					return
				}
			}
		}

		renderer.NotFound(c)
	}
}

// requireViewer redirects anonymous viewers to login, preserving the
// requested path, and reports whether the request may proceed.
func requireViewer(c *gin.Context) bool {
	if !middleware.ViewerFrom(c).Authenticated {
		middleware.RedirectToLogin(c)
		return false
	}
	return true
}

func setParams(c *gin.Context, username, postID string) {
	params := gin.Params{{Key: "username", Value: username}}
	if postID != "" {
		params = append(params, gin.Param{Key: "postID", Value: postID})
	}
	c.Params = params
}

func isPostID(segment string) bool {
	_, err := strconv.ParseInt(segment, 10, 64)
	return err == nil
}
