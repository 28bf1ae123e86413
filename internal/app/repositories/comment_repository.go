package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/witlog/witlog/internal/app/models"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment and returns its ID.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created
	`

	err := r.db.QueryRow(ctx, query, comment.PostID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.Created)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment.ID, nil
}

// ListByPost returns a post's comments in creation order.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created, c.id
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Author.Username,
			&comment.Text,
			&comment.Created,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.Author.ID = comment.AuthorID
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}
