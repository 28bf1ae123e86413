package services

import (
	"context"

	"github.com/witlog/witlog/internal/app/models"
)

// Store interfaces are declared here, where they are consumed. The
// repositories package provides the Postgres implementations; tests
// substitute in-memory mocks.

// UserStore resolves and creates user identities.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// GroupStore resolves groups.
type GroupStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetAll(ctx context.Context) ([]models.Group, error)
}

// PostStore reads and writes posts and serves the feed queries.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	GetByAuthorAndID(ctx context.Context, username string, id int64) (*models.Post, error)

	CountAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error)
	CountByFollowed(ctx context.Context, followerID int64) (int64, error)
	ListByFollowed(ctx context.Context, followerID int64, limit, offset int) ([]models.Post, error)
}

// CommentStore reads and writes comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// FollowStore reads and writes follow edges.
type FollowStore interface {
	Create(ctx context.Context, followerID, followedID int64) error
	Delete(ctx context.Context, followerID, followedID int64) error
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	CountFollowers(ctx context.Context, followedID int64) (int64, error)
	CountFollowing(ctx context.Context, followerID int64) (int64, error)
}
