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

func newPostServiceFixture(t *testing.T) (PostService, *mockPostStore, *mockGroupStore, *mockUserStore) {
	t.Helper()
	posts := newMockPostStore()
	groups := &mockGroupStore{groups: []models.Group{
		{ID: 1, Title: "Travel notes", Slug: "travel"},
	}}
	users := newMockUserStore()
	svc := NewPostService(posts, groups, newMockCommentStore(), &mockImageStorage{})
	return svc, posts, groups, users
}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	svc, _, _, _ := newPostServiceFixture(t)

	_, err := svc.CreatePost(context.Background(), models.Anonymous(), PostInput{Text: "hello"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreatePostRejectsEmptyText(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(context.Background(), viewer, PostInput{Text: text})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("text %q: expected ErrValidationFailed, got %v", text, err)
		}
	}
	if len(posts.posts) != 0 {
		t.Fatal("rejected submissions must not write anything")
	}
}

func TestCreatePostRejectsOverlongText(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	_, err := svc.CreatePost(context.Background(), viewer, PostInput{
		Text: strings.Repeat("x", models.MaxPostTextLen+1),
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if len(posts.posts) != 0 {
		t.Fatal("rejected submissions must not write anything")
	}

	// Exactly at the limit is fine.
	_, err = svc.CreatePost(context.Background(), viewer, PostInput{
		Text: strings.Repeat("x", models.MaxPostTextLen),
	})
	if err != nil {
		t.Fatalf("text at the limit should pass, got %v", err)
	}
}

func TestCreatePostRejectsUnknownGroup(t *testing.T) {
	svc, _, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	missing := int64(42)
	_, err := svc.CreatePost(context.Background(), viewer, PostInput{Text: "hello", GroupID: &missing})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestCreatePostWithGroup(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	viewer := models.AuthenticatedViewer(author.ID, author.Username)

	groupID := int64(1)
	post, err := svc.CreatePost(context.Background(), viewer, PostInput{Text: "hello", GroupID: &groupID})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("created post has no id")
	}
	if post.AuthorID != author.ID {
		t.Fatalf("author not recorded: got %d", post.AuthorID)
	}
	if post.GroupID == nil || *post.GroupID != groupID {
		t.Fatal("group not recorded")
	}
	if len(posts.posts) != 1 {
		t.Fatalf("expected one stored post, got %d", len(posts.posts))
	}
}

func TestEditPostOnlyByAuthor(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	intruder := users.add("boris")
	stored := posts.add(author, "original", time.Now())

	viewer := models.AuthenticatedViewer(intruder.ID, intruder.Username)
	_, err := svc.EditPost(context.Background(), viewer, author.Username, stored.ID, PostInput{Text: "hijacked"})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if posts.posts[0].Text != "original" {
		t.Fatal("denied edit must not change the post")
	}
}

func TestEditPostKeepsPubDateAndAuthor(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	pubDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := posts.add(author, "original", pubDate)

	viewer := models.AuthenticatedViewer(author.ID, author.Username)
	post, err := svc.EditPost(context.Background(), viewer, author.Username, stored.ID, PostInput{Text: "rewritten"})
	if err != nil {
		t.Fatalf("EditPost failed: %v", err)
	}
	if post.Text != "rewritten" {
		t.Fatalf("text not updated: %q", post.Text)
	}
	if !post.PubDate.Equal(pubDate) {
		t.Fatal("edit must not change the publication date")
	}
	if post.AuthorID != author.ID {
		t.Fatal("edit must not change the author")
	}
}

func TestEditPostClearsGroup(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	stored := posts.add(author, "original", time.Now())
	groupID := int64(1)
	posts.posts[0].GroupID = &groupID

	viewer := models.AuthenticatedViewer(author.ID, author.Username)
	post, err := svc.EditPost(context.Background(), viewer, author.Username, stored.ID, PostInput{Text: "no group now"})
	if err != nil {
		t.Fatalf("EditPost failed: %v", err)
	}
	if post.GroupID != nil {
		t.Fatal("submitting without a group should clear it")
	}
	if posts.posts[0].GroupID != nil {
		t.Fatal("stored post still has a group")
	}
}

func TestGetPostUnknownPair(t *testing.T) {
	svc, posts, _, users := newPostServiceFixture(t)
	author := users.add("anna")
	users.add("boris")
	stored := posts.add(author, "original", time.Now())

	// Right id, wrong author.
	_, _, err := svc.GetPost(context.Background(), "boris", stored.ID)
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
