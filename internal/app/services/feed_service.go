package services

import (
	"context"
	"fmt"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/helpers"
)

// FeedPage is one page of an ordered post sequence together with its
// pagination metadata.
type FeedPage struct {
	Posts  []models.Post
	Window helpers.PageWindow
}

// FeedService composes ordered post feeds for a viewing context.
// Every feed is newest first with ties broken by insertion order, and
// membership is decided by the posts' stored foreign keys.
type FeedService interface {
	GlobalFeed(ctx context.Context, page int) (FeedPage, error)
	GroupFeed(ctx context.Context, slug string, page int) (*models.Group, FeedPage, error)
	AuthorFeed(ctx context.Context, username string, page int) (*models.User, FeedPage, error)
	FollowedFeed(ctx context.Context, viewer models.Viewer, page int) (FeedPage, error)
}

// feedServiceImpl implements the FeedService interface
type feedServiceImpl struct {
	postStore  PostStore
	groupStore GroupStore
	userStore  UserStore
	pageSize   int
}

// NewFeedService creates a new feed service instance
func NewFeedService(postStore PostStore, groupStore GroupStore, userStore UserStore, pageSize int) FeedService {
	if pageSize <= 0 {
		pageSize = helpers.DefaultPageSize
	}
	return &feedServiceImpl{
		postStore:  postStore,
		groupStore: groupStore,
		userStore:  userStore,
		pageSize:   pageSize,
	}
}

// GlobalFeed returns one page of all posts.
func (s *feedServiceImpl) GlobalFeed(ctx context.Context, page int) (FeedPage, error) {
	total, err := s.postStore.CountAll(ctx)
	if err != nil {
		return FeedPage{}, fmt.Errorf("error composing global feed: %w", err)
	}

	window := helpers.NewPageWindow(page, s.pageSize, total)
	posts, err := s.postStore.ListAll(ctx, window.Size, window.Offset())
	if err != nil {
		return FeedPage{}, fmt.Errorf("error composing global feed: %w", err)
	}

	return FeedPage{Posts: posts, Window: window}, nil
}

// GroupFeed returns one page of a group's posts.
func (s *feedServiceImpl) GroupFeed(ctx context.Context, slug string, page int) (*models.Group, FeedPage, error) {
	group, err := s.groupStore.GetBySlug(ctx, slug)
	if err != nil {
		return nil, FeedPage{}, err
	}

	total, err := s.postStore.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, FeedPage{}, fmt.Errorf("error composing group feed: %w", err)
	}

	window := helpers.NewPageWindow(page, s.pageSize, total)
	posts, err := s.postStore.ListByGroup(ctx, group.ID, window.Size, window.Offset())
	if err != nil {
		return nil, FeedPage{}, fmt.Errorf("error composing group feed: %w", err)
	}

	return group, FeedPage{Posts: posts, Window: window}, nil
}

// AuthorFeed returns one page of an author's posts.
func (s *feedServiceImpl) AuthorFeed(ctx context.Context, username string, page int) (*models.User, FeedPage, error) {
	author, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, FeedPage{}, err
	}

	total, err := s.postStore.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, FeedPage{}, fmt.Errorf("error composing author feed: %w", err)
	}

	window := helpers.NewPageWindow(page, s.pageSize, total)
	posts, err := s.postStore.ListByAuthor(ctx, author.ID, window.Size, window.Offset())
	if err != nil {
		return nil, FeedPage{}, fmt.Errorf("error composing author feed: %w", err)
	}

	return author, FeedPage{Posts: posts, Window: window}, nil
}

// FollowedFeed returns one page of posts by authors the viewer follows.
// An anonymous viewer is rejected; a viewer following nobody gets an
// empty page.
func (s *feedServiceImpl) FollowedFeed(ctx context.Context, viewer models.Viewer, page int) (FeedPage, error) {
	if !viewer.Authenticated {
		return FeedPage{}, apperrors.ErrUnauthorized
	}

	total, err := s.postStore.CountByFollowed(ctx, viewer.UserID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("error composing followed feed: %w", err)
	}

	window := helpers.NewPageWindow(page, s.pageSize, total)
	posts, err := s.postStore.ListByFollowed(ctx, viewer.UserID, window.Size, window.Offset())
	if err != nil {
		return FeedPage{}, fmt.Errorf("error composing followed feed: %w", err)
	}

	return FeedPage{Posts: posts, Window: window}, nil
}
