package services

import (
	"context"
	"fmt"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// FollowCounts is the follower/following tally shown on a profile.
type FollowCounts struct {
	Followers int64
	Following int64
}

// FollowService defines the interface for follow edge operations
type FollowService interface {
	// Follow creates the edge viewer -> username. Following yourself
	// fails with ErrSelfFollow; following an already-followed author is
	// a no-op.
	Follow(ctx context.Context, viewer models.Viewer, username string) error

	// Unfollow removes the edge viewer -> username. Removing a missing
	// edge is a no-op.
	Unfollow(ctx context.Context, viewer models.Viewer, username string) error

	// IsFollowing reports whether the viewer follows the author.
	// Anonymous viewers follow nobody.
	IsFollowing(ctx context.Context, viewer models.Viewer, authorID int64) (bool, error)

	// Counts returns the user's follower and following tallies.
	Counts(ctx context.Context, userID int64) (FollowCounts, error)
}

// followServiceImpl implements the FollowService interface
type followServiceImpl struct {
	followStore FollowStore
	userStore   UserStore
}

// NewFollowService creates a new follow service instance
func NewFollowService(followStore FollowStore, userStore UserStore) FollowService {
	return &followServiceImpl{
		followStore: followStore,
		userStore:   userStore,
	}
}

// Follow creates a follow edge from the viewer to the resolved author.
func (s *followServiceImpl) Follow(ctx context.Context, viewer models.Viewer, username string) error {
	if !viewer.Authenticated {
		return apperrors.ErrUnauthorized
	}

	author, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.ID == viewer.UserID {
		return apperrors.ErrSelfFollow
	}

	if err := s.followStore.Create(ctx, viewer.UserID, author.ID); err != nil {
		return fmt.Errorf("error creating follow: %w", err)
	}

	return nil
}

// Unfollow removes the follow edge from the viewer to the resolved author.
func (s *followServiceImpl) Unfollow(ctx context.Context, viewer models.Viewer, username string) error {
	if !viewer.Authenticated {
		return apperrors.ErrUnauthorized
	}

	author, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := s.followStore.Delete(ctx, viewer.UserID, author.ID); err != nil {
		return fmt.Errorf("error deleting follow: %w", err)
	}

	return nil
}

// IsFollowing reports whether the viewer follows the author.
func (s *followServiceImpl) IsFollowing(ctx context.Context, viewer models.Viewer, authorID int64) (bool, error) {
	if !viewer.Authenticated {
		return false, nil
	}

	exists, err := s.followStore.Exists(ctx, viewer.UserID, authorID)
	if err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}

	return exists, nil
}

// Counts returns the follower and following tallies for a user.
func (s *followServiceImpl) Counts(ctx context.Context, userID int64) (FollowCounts, error) {
	followers, err := s.followStore.CountFollowers(ctx, userID)
	if err != nil {
		return FollowCounts{}, fmt.Errorf("error counting followers: %w", err)
	}

	following, err := s.followStore.CountFollowing(ctx, userID)
	if err != nil {
		return FollowCounts{}, fmt.Errorf("error counting following: %w", err)
	}

	return FollowCounts{Followers: followers, Following: following}, nil
}
