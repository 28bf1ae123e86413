package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"time"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

var errStoreDown = errors.New("store unavailable")

//
// --- In-memory stores ---
//

type mockUserStore struct {
	users      []models.User
	nextID     int64
	ShouldFail bool
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{nextID: 1}
}

func (m *mockUserStore) add(username string) models.User {
	user := models.User{
		ID:       m.nextID,
		Username: username,
		Email:    username + "@example.com",
	}
	m.nextID++
	m.users = append(m.users, user)
	return user
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return 0, apperrors.ErrUsernameAlreadyExists
		}
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.users = append(m.users, *user)
	return user.ID, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type mockGroupStore struct {
	groups     []models.Group
	ShouldFail bool
}

func (m *mockGroupStore) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	for _, group := range m.groups {
		if group.Slug == slug {
			g := group
			return &g, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (m *mockGroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	for _, group := range m.groups {
		if group.ID == id {
			g := group
			return &g, nil
		}
	}
	return nil, apperrors.ErrGroupNotFound
}

func (m *mockGroupStore) GetAll(ctx context.Context) ([]models.Group, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	return append([]models.Group(nil), m.groups...), nil
}

// mockPostStore keeps posts in insertion order and sorts feed queries
// newest first, ties broken by id, like the SQL store does.
type mockPostStore struct {
	posts      []models.Post
	nextID     int64
	follows    map[int64]map[int64]bool // follower -> followed set
	ShouldFail bool
}

func newMockPostStore() *mockPostStore {
	return &mockPostStore{nextID: 1, follows: map[int64]map[int64]bool{}}
}

func (m *mockPostStore) add(author models.User, text string, pubDate time.Time) models.Post {
	post := models.Post{
		ID:       m.nextID,
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
		Author:   author,
	}
	m.nextID++
	m.posts = append(m.posts, post)
	return post
}

func (m *mockPostStore) sorted(matching func(models.Post) bool) []models.Post {
	var result []models.Post
	for _, post := range m.posts {
		if matching(post) {
			result = append(result, post)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].PubDate.Equal(result[j].PubDate) {
			return result[i].PubDate.After(result[j].PubDate)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func page(posts []models.Post, limit, offset int) []models.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (m *mockPostStore) Create(ctx context.Context, post *models.Post) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	post.ID = m.nextID
	post.PubDate = time.Now()
	m.nextID++
	m.posts = append(m.posts, *post)
	return post.ID, nil
}

func (m *mockPostStore) Update(ctx context.Context, post *models.Post) error {
	if m.ShouldFail {
		return errStoreDown
	}
	for i := range m.posts {
		if m.posts[i].ID == post.ID {
			m.posts[i].Text = post.Text
			m.posts[i].GroupID = post.GroupID
			m.posts[i].ImagePath = post.ImagePath
			return nil
		}
	}
	return apperrors.ErrPostNotFound
}

func (m *mockPostStore) GetByAuthorAndID(ctx context.Context, username string, id int64) (*models.Post, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	for _, post := range m.posts {
		if post.ID == id && post.Author.Username == username {
			p := post
			return &p, nil
		}
	}
	return nil, apperrors.ErrPostNotFound
}

func (m *mockPostStore) CountAll(ctx context.Context) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	return int64(len(m.posts)), nil
}

func (m *mockPostStore) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	return page(m.sorted(func(models.Post) bool { return true }), limit, offset), nil
}

func (m *mockPostStore) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	var count int64
	for _, post := range m.posts {
		if post.GroupID != nil && *post.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (m *mockPostStore) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	return page(m.sorted(func(p models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), limit, offset), nil
}

func (m *mockPostStore) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	var count int64
	for _, post := range m.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (m *mockPostStore) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	return page(m.sorted(func(p models.Post) bool { return p.AuthorID == authorID }), limit, offset), nil
}

func (m *mockPostStore) CountByFollowed(ctx context.Context, followerID int64) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	var count int64
	for _, post := range m.posts {
		if m.follows[followerID][post.AuthorID] {
			count++
		}
	}
	return count, nil
}

func (m *mockPostStore) ListByFollowed(ctx context.Context, followerID int64, limit, offset int) ([]models.Post, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	return page(m.sorted(func(p models.Post) bool {
		return m.follows[followerID][p.AuthorID]
	}), limit, offset), nil
}

type mockCommentStore struct {
	comments   []models.Comment
	nextID     int64
	ShouldFail bool
}

func newMockCommentStore() *mockCommentStore {
	return &mockCommentStore{nextID: 1}
}

func (m *mockCommentStore) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	comment.ID = m.nextID
	comment.Created = time.Now()
	m.nextID++
	m.comments = append(m.comments, *comment)
	return comment.ID, nil
}

func (m *mockCommentStore) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	if m.ShouldFail {
		return nil, errStoreDown
	}
	var result []models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type mockFollowStore struct {
	edges      map[[2]int64]bool
	ShouldFail bool
}

func newMockFollowStore() *mockFollowStore {
	return &mockFollowStore{edges: map[[2]int64]bool{}}
}

func (m *mockFollowStore) Create(ctx context.Context, followerID, followedID int64) error {
	if m.ShouldFail {
		return errStoreDown
	}
	m.edges[[2]int64{followerID, followedID}] = true
	return nil
}

func (m *mockFollowStore) Delete(ctx context.Context, followerID, followedID int64) error {
	if m.ShouldFail {
		return errStoreDown
	}
	delete(m.edges, [2]int64{followerID, followedID})
	return nil
}

func (m *mockFollowStore) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	if m.ShouldFail {
		return false, errStoreDown
	}
	return m.edges[[2]int64{followerID, followedID}], nil
}

func (m *mockFollowStore) CountFollowers(ctx context.Context, followedID int64) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	var count int64
	for edge := range m.edges {
		if edge[1] == followedID {
			count++
		}
	}
	return count, nil
}

func (m *mockFollowStore) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	if m.ShouldFail {
		return 0, errStoreDown
	}
	var count int64
	for edge := range m.edges {
		if edge[0] == followerID {
			count++
		}
	}
	return count, nil
}

type mockImageStorage struct {
	saved      []string
	ShouldFail bool
}

func (m *mockImageStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if m.ShouldFail {
		return "", errStoreDown
	}
	path := "/media/" + fileHeader.Filename
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *mockImageStorage) DeleteImage(path string) error {
	if m.ShouldFail {
		return errStoreDown
	}
	return nil
}
