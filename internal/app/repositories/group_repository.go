package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
	"github.com/witlog/witlog/internal/pkg/dberrors"
)

// GroupRepository handles database operations for groups
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts a new group and returns its ID.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (int64, error) {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, group.Title, group.Slug, group.Description).Scan(&group.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "groups_slug_key") {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("failed to create group: %w", err)
	}

	return group.ID, nil
}

// GetBySlug resolves a slug to a group.
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE slug = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, slug).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

// GetByID retrieves a group by ID.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE id = $1
	`

	var group models.Group
	err := r.db.QueryRow(ctx, query, id).
		Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

// GetAll retrieves all groups ordered by title, for the post form select.
func (r *GroupRepository) GetAll(ctx context.Context) ([]models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}
