package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// postColumns is the select list shared by every post query. Author is
// always joined; group is joined when set.
const postColumns = `
	p.id, p.text, p.pub_date, p.author_id, u.username,
	p.group_id, g.title, g.slug, p.image_path
`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

// Feed ordering: newest first, insertion order breaks ties.
const postOrder = ` ORDER BY p.pub_date DESC, p.id DESC`

// Create inserts a new post. The publication date is set by the
// database at insert time and never updated afterwards.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (text, author_id, group_id, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date
	`

	err := r.db.QueryRow(ctx, query, post.Text, post.AuthorID, post.GroupID, nullableString(post.ImagePath)).
		Scan(&post.ID, &post.PubDate)
	if err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	return post.ID, nil
}

// Update overwrites the editable fields of a post: text, group, image.
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET text = $1, group_id = $2, image_path = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, post.Text, post.GroupID, nullableString(post.ImagePath), post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// GetByAuthorAndID resolves a (username, post id) pair. The pair fails
// to resolve when either part does not exist or the post belongs to a
// different author.
func (r *PostRepository) GetByAuthorAndID(ctx context.Context, username string, id int64) (*models.Post, error) {
	query := `SELECT` + postColumns + postJoins + `WHERE p.id = $1 AND u.username = $2`
	return r.scanPost(r.db.QueryRow(ctx, query, id, username))
}

// CountAll returns the number of posts.
func (r *PostRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

// ListAll returns a window of the global feed.
func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `SELECT` + postColumns + postJoins + postOrder + ` LIMIT $1 OFFSET $2`
	return r.listPosts(ctx, query, limit, offset)
}

// CountByGroup returns the number of posts published into a group.
func (r *PostRepository) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
}

// ListByGroup returns a window of one group's feed. Membership is
// decided by the stored group foreign key.
func (r *PostRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	query := `SELECT` + postColumns + postJoins + `WHERE p.group_id = $1` + postOrder + ` LIMIT $2 OFFSET $3`
	return r.listPosts(ctx, query, groupID, limit, offset)
}

// CountByAuthor returns the number of posts by an author.
func (r *PostRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
}

// ListByAuthor returns a window of one author's feed.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error) {
	query := `SELECT` + postColumns + postJoins + `WHERE p.author_id = $1` + postOrder + ` LIMIT $2 OFFSET $3`
	return r.listPosts(ctx, query, authorID, limit, offset)
}

// CountByFollowed returns the number of posts authored by users the
// viewer follows.
func (r *PostRepository) CountByFollowed(ctx context.Context, followerID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM posts p
		WHERE p.author_id IN (
			SELECT followed_id FROM follows WHERE follower_id = $1
		)
	`
	return r.count(ctx, query, followerID)
}

// ListByFollowed returns a window of the viewer's followed feed.
func (r *PostRepository) ListByFollowed(ctx context.Context, followerID int64, limit, offset int) ([]models.Post, error) {
	query := `SELECT` + postColumns + postJoins + `
		WHERE p.author_id IN (
			SELECT followed_id FROM follows WHERE follower_id = $1
		)` + postOrder + ` LIMIT $2 OFFSET $3`
	return r.listPosts(ctx, query, followerID, limit, offset)
}

func (r *PostRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

func (r *PostRepository) listPosts(ctx context.Context, query string, args ...interface{}) ([]models.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) scanPost(row pgx.Row) (*models.Post, error) {
	post, err := scanPostRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func scanPostRow(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var groupTitle, groupSlug, imagePath *string

	err := row.Scan(
		&post.ID,
		&post.Text,
		&post.PubDate,
		&post.AuthorID,
		&post.Author.Username,
		&post.GroupID,
		&groupTitle,
		&groupSlug,
		&imagePath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}

	post.Author.ID = post.AuthorID
	if post.GroupID != nil && groupTitle != nil && groupSlug != nil {
		post.Group = &models.Group{
			ID:    *post.GroupID,
			Title: *groupTitle,
			Slug:  *groupSlug,
		}
	}
	if imagePath != nil {
		post.ImagePath = *imagePath
	}

	return &post, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
