package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/witlog/witlog/internal/app/controllers"
	appMigrations "github.com/witlog/witlog/internal/app/migrations"
	appRepos "github.com/witlog/witlog/internal/app/repositories"
	appRoutes "github.com/witlog/witlog/internal/app/routes"
	appServices "github.com/witlog/witlog/internal/app/services"
	"github.com/witlog/witlog/internal/app/views"
	"github.com/witlog/witlog/internal/cache"
	"github.com/witlog/witlog/internal/config"
	"github.com/witlog/witlog/internal/db"
	appMiddleware "github.com/witlog/witlog/internal/middleware"
	pkgAuth "github.com/witlog/witlog/internal/pkg/auth"
	"github.com/witlog/witlog/internal/pkg/filestorage"
	"github.com/witlog/witlog/internal/pkg/logger"
	"github.com/witlog/witlog/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	FeedService       appServices.FeedService
	PostService       appServices.PostService
	CommentService    appServices.CommentService
	FollowService     appServices.FollowService
	AuthService       appServices.AuthService
	FeedController    *appControllers.FeedController
	PostController    *appControllers.PostController
	CommentController *appControllers.CommentController
	FollowController  *appControllers.FollowController
	AuthController    *appControllers.AuthController
	ViewerMiddleware  *appMiddleware.ViewerMiddleware
	Repos             *appRepos.Repositories
	SessionService    *pkgAuth.SessionService
	FragmentCache     cache.FragmentCache
	Renderer          *views.Renderer
	FileStorage       *filestorage.LocalStorage
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds the default groups.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// setupFragmentCache picks the cache backend. With Redis disabled or
// unreachable the in-process backend serves instead, so the home page
// simply starts cold.
func setupFragmentCache(cfg *config.Config, lgr zerolog.Logger) cache.FragmentCache {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, using in-process fragment cache")
		return cache.NewMemoryCache()
	}

	client, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Redis unreachable, falling back to in-process fragment cache")
		return cache.NewMemoryCache()
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Fragment cache backed by Redis")
	return cache.NewRedisCache(client)
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	baseURL := "http://localhost:" + cfg.Server.Port + "/media"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Renderer, err = views.NewRenderer(filepath.Join("web", "templates", "*.html"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	deps.FragmentCache = setupFragmentCache(cfg, lgr)

	deps.SessionService = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey:  cfg.Session.Secret,
		Expiration: cfg.SessionExpiration(),
		Issuer:     cfg.Session.Issuer,
		CookieName: cfg.Session.CookieName,
	})

	deps.FeedService = appServices.NewFeedService(
		deps.Repos.PostRepository,
		deps.Repos.GroupRepository,
		deps.Repos.UserRepository,
		cfg.Feed.PageSize,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.GroupRepository,
		deps.Repos.CommentRepository,
		deps.FileStorage,
	)
	deps.CommentService = appServices.NewCommentService(deps.Repos.CommentRepository, deps.Repos.PostRepository)
	deps.FollowService = appServices.NewFollowService(deps.Repos.FollowRepository, deps.Repos.UserRepository)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository)

	deps.ViewerMiddleware = appMiddleware.NewViewerMiddleware(deps.SessionService)

	deps.FeedController = appControllers.NewFeedController(
		deps.FeedService,
		deps.FollowService,
		deps.FragmentCache,
		deps.Renderer,
		cfg.IndexCacheTTL(),
	)
	deps.PostController = appControllers.NewPostController(deps.PostService, deps.Renderer)
	deps.CommentController = appControllers.NewCommentController(deps.CommentService, deps.PostService, deps.Renderer)
	deps.FollowController = appControllers.NewFollowController(deps.FollowService, deps.Renderer)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.SessionService, deps.Renderer)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.FeedController,
		deps.PostController,
		deps.CommentController,
		deps.FollowController,
		deps.AuthController,
		deps.ViewerMiddleware,
		deps.Renderer,
	)

	return router
}
