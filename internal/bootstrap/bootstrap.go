package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/registrar/internal/app/controllers"
	appMigrations "github.com/yigit/registrar/internal/app/migrations"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	appRoutes "github.com/yigit/registrar/internal/app/routes"
	appServices "github.com/yigit/registrar/internal/app/services"
	"github.com/yigit/registrar/internal/config"
	"github.com/yigit/registrar/internal/db"
	appMiddleware "github.com/yigit/registrar/internal/middleware"
	"github.com/yigit/registrar/internal/pkg/helpers"
	"github.com/yigit/registrar/internal/pkg/logger"
)

// DefaultConfigPath is where the config file is looked up when none is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repository             appRepos.KeyValueRepository
	Store                  *appServices.Store
	CourseTypeController   *appControllers.NameController
	CourseController       *appControllers.NameController
	OfferingController     *appControllers.OfferingController
	RegistrationController *appControllers.RegistrationController
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the key-value backend selected by cfg.Storage.Driver.
// Remote backends are wrapped in a circuit breaker when enabled.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.KeyValueRepository, error) {
	lgr.Info().Str("driver", cfg.Storage.Driver).Msg("Opening storage...")

	var (
		repo appRepos.KeyValueRepository
		err  error
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		repo = appRepos.NewMemoryKVRepository()
	case config.DriverFile:
		repo, err = appRepos.NewFileKVRepository(cfg.Storage.FilePath, lgr)
	case config.DriverSQLite:
		repo, err = setupSQLite(ctx, cfg)
	case config.DriverPostgres:
		repo, err = setupPostgres(ctx, cfg, lgr)
	case config.DriverRedis:
		repo, err = setupRedis(ctx, cfg)
	default:
		err = fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to open storage")
		return nil, err
	}

	if cfg.IsRemoteStorage() && cfg.Storage.Breaker.Enabled {
		repo = appRepos.NewBreakerKVRepository(repo, appRepos.BreakerConfig{
			Name:             cfg.Storage.Driver,
			FailureThreshold: uint32(cfg.Storage.Breaker.FailureThreshold),
			Timeout:          helpers.ParseDuration(cfg.Storage.Breaker.Timeout, 30*time.Second),
		}, lgr)
	}

	lgr.Info().Str("driver", cfg.Storage.Driver).Msg("Storage ready.")
	return repo, nil
}

func setupSQLite(ctx context.Context, cfg *config.Config) (appRepos.KeyValueRepository, error) {
	sqlDB, err := db.NewSQLiteDB(ctx, cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}
	repo, err := appRepos.NewSQLiteKVRepository(ctx, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return repo, nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.KeyValueRepository, error) {
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return appRepos.NewPostgresKVRepository(database), nil
}

func setupRedis(ctx context.Context, cfg *config.Config) (appRepos.KeyValueRepository, error) {
	client, err := db.NewRedisClient(ctx, cfg.Storage.RedisURL)
	if err != nil {
		return nil, err
	}
	return appRepos.NewRedisKVRepository(client, cfg.Storage.RedisPrefix), nil
}

// BuildDependencies loads the store from repo and creates the controllers.
// storeLogger is used as-is; callers tag it, usually with logger.Component("store").
func BuildDependencies(ctx context.Context, repo appRepos.KeyValueRepository, storeLogger zerolog.Logger) *Dependencies {
	store := appServices.NewStore(ctx, repo, storeLogger)

	return &Dependencies{
		Repository:             repo,
		Store:                  store,
		CourseTypeController:   appControllers.NewCourseTypeController(store),
		CourseController:       appControllers.NewCourseController(store),
		OfferingController:     appControllers.NewOfferingController(store),
		RegistrationController: appControllers.NewRegistrationController(store, store),
	}
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
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.CourseTypeController,
		deps.CourseController,
		deps.OfferingController,
		deps.RegistrationController,
	)

	router.GET("/ping", func(c *gin.Context) {
		body := gin.H{"message": "pong", "status": "success", "storage": cfg.Storage.Driver}
		if breaker, ok := deps.Repository.(*appRepos.BreakerKVRepository); ok {
			body["breaker"] = breaker.State().String()
		}
		c.JSON(http.StatusOK, body)
	})

	return router
}
