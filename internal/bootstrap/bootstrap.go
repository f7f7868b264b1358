package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/asaplab/asap/internal/app/controllers"
	appMigrations "github.com/asaplab/asap/internal/app/migrations"
	appRepos "github.com/asaplab/asap/internal/app/repositories"
	appRoutes "github.com/asaplab/asap/internal/app/routes"
	appServices "github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/config"
	"github.com/asaplab/asap/internal/db"
	"github.com/asaplab/asap/internal/jobs"
	appMiddleware "github.com/asaplab/asap/internal/middleware"
	pkgAuth "github.com/asaplab/asap/internal/pkg/auth"
	"github.com/asaplab/asap/internal/pkg/email"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/asaplab/asap/internal/pkg/validation"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Scheduler      *jobs.Scheduler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
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

// ConnectDatabase opens the connection pool without touching the schema.
func ConnectDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies the embedded SQL migrations.
func RunMigrations(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr.With().Str("component", "migrator").Logger())

	applied, err := migrator.Migrate(ctx, appMigrations.Files())
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	dbPool, err := ConnectDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, dbPool, lgr); err != nil {
		dbPool.Close()
		return nil, err
	}
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr.With().Str("component", "mailer").Logger())

	deps.Services = appServices.NewServices(appServices.Deps{
		Repos:         deps.Repos,
		JWT:           deps.JWTService,
		Mailer:        mailer,
		BaseURL:       cfg.Server.BaseURL,
		ActivationTTL: helpers.ParseDuration(cfg.Activation.TokenExpiration, 72*time.Hour),
		Logger:        lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Services.Profile)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.Services.Auth, lgr),
		Research:   appControllers.NewResearchController(deps.Services.Research, deps.Services.Catalog),
		Unit:       appControllers.NewUnitController(deps.Services.Unit),
		Enrollment: appControllers.NewEnrollmentController(deps.Services.Enrollment),
		Manage:     appControllers.NewManageController(deps.Services.Outcome),
		Profile:    appControllers.NewProfileController(deps.Services.Profile),
		Health:     appControllers.NewHealthController(dbPool),
	}

	scheduler, err := SetupScheduler(cfg, deps.Repos, lgr)
	if err != nil {
		return nil, err
	}
	deps.Scheduler = scheduler

	return deps, nil
}

// SetupScheduler registers the periodic maintenance jobs.
func SetupScheduler(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*jobs.Scheduler, error) {
	jobLogger := lgr.With().Str("component", "jobs").Logger()
	scheduler := jobs.NewScheduler(jobLogger)

	cleanup := jobs.TokenCleanup(repos.VerificationTokenRepository, repos.TokenRepository, jobLogger)
	if err := scheduler.Add("token-cleanup", cfg.Jobs.TokenCleanupSchedule, cleanup); err != nil {
		return nil, fmt.Errorf("failed to schedule token cleanup: %w", err)
	}
	return scheduler, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
