package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	AddComment(ctx context.Context, viewer models.Viewer, username string, postID int64, text string) (*models.Comment, error)
}

// commentServiceImpl implements the CommentService interface
type commentServiceImpl struct {
	commentStore CommentStore
	postStore    PostStore
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentStore CommentStore, postStore PostStore) CommentService {
	return &commentServiceImpl{
		commentStore: commentStore,
		postStore:    postStore,
	}
}

// AddComment attaches a comment to the post resolved by the
// (username, post id) pair.
func (s *commentServiceImpl) AddComment(ctx context.Context, viewer models.Viewer, username string, postID int64, text string) (*models.Comment, error) {
	if !viewer.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}

	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text is required").WithField("text")
	}
	if len([]rune(text)) > models.MaxCommentTextLen {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("text must be at most %d characters", models.MaxCommentTextLen)).WithField("text")
	}

	post, err := s.postStore.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: viewer.UserID,
		Text:     text,
	}
	comment.Author.ID = viewer.UserID
	comment.Author.Username = viewer.Username

	if _, err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return comment, nil
}
