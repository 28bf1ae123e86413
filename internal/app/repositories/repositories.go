package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	UserRepository    *UserRepository
	GroupRepository   *GroupRepository
	PostRepository    *PostRepository
	CommentRepository *CommentRepository
	FollowRepository  *FollowRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		GroupRepository:   NewGroupRepository(db),
		PostRepository:    NewPostRepository(db),
		CommentRepository: NewCommentRepository(db),
		FollowRepository:  NewFollowRepository(db),
	}
}
