package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

func newCommentServiceFixture(t *testing.T) (CommentService, *mockCommentStore, *mockPostStore, models.User, models.Post) {
	t.Helper()
	users := newMockUserStore()
	author := users.add("anna")
	posts := newMockPostStore()
	post := posts.add(author, "a post", time.Now())
	comments := newMockCommentStore()
	return NewCommentService(comments, posts), comments, posts, author, post
}

func TestAddCommentRequiresAuthentication(t *testing.T) {
	svc, _, _, author, post := newCommentServiceFixture(t)

	_, err := svc.AddComment(context.Background(), models.Anonymous(), author.Username, post.ID, "nice")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	svc, comments, _, author, post := newCommentServiceFixture(t)
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	_, err := svc.AddComment(context.Background(), viewer, author.Username, post.ID, "   ")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(comments.comments) != 0 {
		t.Fatal("rejected comment must not be stored")
	}
}

func TestAddCommentRejectsOverlongText(t *testing.T) {
	svc, comments, _, author, post := newCommentServiceFixture(t)
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	_, err := svc.AddComment(context.Background(), viewer, author.Username, post.ID,
		strings.Repeat("x", models.MaxCommentTextLen+1))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(comments.comments) != 0 {
		t.Fatal("rejected comment must not be stored")
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	svc, _, _, author, _ := newCommentServiceFixture(t)
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	_, err := svc.AddComment(context.Background(), viewer, author.Username, 999, "nice")
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestAddCommentStoresAuthorAndPost(t *testing.T) {
	svc, comments, _, author, post := newCommentServiceFixture(t)
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	comment, err := svc.AddComment(context.Background(), viewer, author.Username, post.ID, "nice one")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if comment.PostID != post.ID {
		t.Fatalf("comment bound to wrong post: %d", comment.PostID)
	}
	if comment.AuthorID != author.ID {
		t.Fatalf("comment bound to wrong author: %d", comment.AuthorID)
	}
	if len(comments.comments) != 1 {
		t.Fatalf("expected one stored comment, got %d", len(comments.comments))
	}
}
