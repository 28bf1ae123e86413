package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/filestorage"
)

// PostInput carries the submitted post form fields.
type PostInput struct {
	Text    string
	GroupID *int64
	Image   *multipart.FileHeader
}

// PostService defines the interface for post write and read operations
type PostService interface {
	CreatePost(ctx context.Context, viewer models.Viewer, input PostInput) (*models.Post, error)
	EditPost(ctx context.Context, viewer models.Viewer, username string, postID int64, input PostInput) (*models.Post, error)
	GetPost(ctx context.Context, username string, postID int64) (*models.Post, []models.Comment, error)
	GetGroups(ctx context.Context) ([]models.Group, error)
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postStore    PostStore
	groupStore   GroupStore
	commentStore CommentStore
	imageStorage filestorage.ImageStorage
}

// NewPostService creates a new post service instance
func NewPostService(postStore PostStore, groupStore GroupStore, commentStore CommentStore, imageStorage filestorage.ImageStorage) PostService {
	return &postServiceImpl{
		postStore:    postStore,
		groupStore:   groupStore,
		commentStore: commentStore,
		imageStorage: imageStorage,
	}
}

// validatePostInput checks the submitted fields against the post
// constraints. Nothing is written when validation fails.
func (s *postServiceImpl) validatePostInput(ctx context.Context, input PostInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return apperrors.NewValidationError("text is required").WithField("text")
	}
	if len([]rune(input.Text)) > models.MaxPostTextLen {
		return apperrors.NewValidationError(
			fmt.Sprintf("text must be at most %d characters", models.MaxPostTextLen)).WithField("text")
	}
	if input.GroupID != nil {
		if _, err := s.groupStore.GetByID(ctx, *input.GroupID); err != nil {
			return apperrors.NewValidationError("unknown group").WithField("group")
		}
	}
	return nil
}

// CreatePost creates a new post for an authenticated viewer.
func (s *postServiceImpl) CreatePost(ctx context.Context, viewer models.Viewer, input PostInput) (*models.Post, error) {
	if !viewer.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.validatePostInput(ctx, input); err != nil {
		return nil, err
	}

	imagePath, err := s.saveImage(input.Image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     input.Text,
		AuthorID: viewer.UserID,
		GroupID:  input.GroupID,
	}
	post.Author.ID = viewer.UserID
	post.Author.Username = viewer.Username
	post.ImagePath = imagePath

	if _, err := s.postStore.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

// EditPost overwrites a post's text, group and image. Only the author
// may edit; the publication date and author never change.
func (s *postServiceImpl) EditPost(ctx context.Context, viewer models.Viewer, username string, postID int64, input PostInput) (*models.Post, error) {
	if !viewer.Authenticated {
		return nil, apperrors.ErrUnauthorized
	}

	post, err := s.postStore.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != viewer.UserID {
		return nil, apperrors.NewForbiddenError("only the author may edit a post")
	}

	if err := s.validatePostInput(ctx, input); err != nil {
		return nil, err
	}

	post.Text = input.Text
	post.GroupID = input.GroupID
	post.Group = nil

	if input.Image != nil {
		imagePath, err := s.saveImage(input.Image)
		if err != nil {
			return nil, err
		}
		post.ImagePath = imagePath
	}

	if err := s.postStore.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	return post, nil
}

// GetPost resolves a (username, post id) pair and loads its comments.
func (s *postServiceImpl) GetPost(ctx context.Context, username string, postID int64) (*models.Post, []models.Comment, error) {
	post, err := s.postStore.GetByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentStore.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading comments: %w", err)
	}

	return post, comments, nil
}

// GetGroups lists all groups for the post form select.
func (s *postServiceImpl) GetGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groupStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	return groups, nil
}

func (s *postServiceImpl) saveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	imagePath, err := s.imageStorage.SaveImage(fileHeader)
	if err != nil {
		return "", apperrors.NewValidationError("could not save image").WithField("image")
	}
	return imagePath, nil
}
