package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/witlog/witlog/internal/pkg/dberrors"
)

// FollowRepository handles database operations for follow edges
type FollowRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *pgxpool.Pool) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts a follow edge. Inserting an edge that already exists
// is a no-op; the (follower, followed) pair stays unique.
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID int64) error {
	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, followerID, followedID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "follows_follower_followed_key") {
			return nil
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// Delete removes a follow edge. Removing a missing edge is a no-op.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID int64) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followed_id = $2
	`

	_, err := r.db.Exec(ctx, query, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	return nil
}

// Exists reports whether follower follows followed.
func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return exists, nil
}

// CountFollowers returns how many users follow the given author.
func (r *FollowRepository) CountFollowers(ctx context.Context, followedID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM follows WHERE followed_id = $1`
	if err := r.db.QueryRow(ctx, query, followedID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

// CountFollowing returns how many authors the given user follows.
func (r *FollowRepository) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`
	if err := r.db.QueryRow(ctx, query, followerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}
