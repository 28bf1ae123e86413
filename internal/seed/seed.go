package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/witlog/witlog/internal/app/models"
	"github.com/witlog/witlog/internal/app/repositories"
	"github.com/witlog/witlog/internal/pkg/apperrors"
)

// CreateDefaultData creates the starter groups if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	groupRepo := repositories.NewGroupRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default groups...")

	defaultGroups := []models.Group{
		{Title: "Travel notes", Slug: "travel", Description: "Trips, routes and places worth writing home about."},
		{Title: "Tech journal", Slug: "tech", Description: "Software, hardware and everything in between."},
		{Title: "Kitchen stories", Slug: "kitchen", Description: "Recipes and the stories behind them."},
	}

	var finalErr error
	for _, group := range defaultGroups {
		g := group
		if _, err := groupRepo.Create(ctx, &g); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			lgr.Error().Err(err).Str("slug", g.Slug).Msg("Error creating default group")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
