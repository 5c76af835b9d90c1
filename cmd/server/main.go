package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"finance-tracker/internal/actions"
	"finance-tracker/internal/config"
	"finance-tracker/internal/database"
	"finance-tracker/internal/events"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const tokenCleanupInterval = time.Hour

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires the server and blocks until it stops. Returning instead of exiting lets
// the deferred closes of the database and the broker connection run.
func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("server", flag.ContinueOnError)
	flags.SetOutput(stderr)
	envFile := flags.String("env-file", ".env", "optional dotenv file loaded before the environment is read")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// the dotenv file is optional outside local development
	_ = godotenv.Load(*envFile)

	cfg := config.Load()

	logger := newLogger(cfg, stdout)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", cfg.Database.Driver, err)
	}
	defer db.Close()

	publisher, err := events.NewPublisher(&cfg.Events, logger)
	if err != nil {
		logger.Warn("Failed to connect to AMQP broker, continuing without events", "error", err)
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	userRepo := repositories.NewUserRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	txManager := repositories.NewTransactionManager(db.DB)

	metrics := services.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	activity := services.NewActivityLogger(logger)

	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.JWT)
	accountService := services.NewAccountService(accountRepo, metrics, activity, logger)
	categoryService := services.NewCategoryService(categoryRepo, metrics, activity, logger)
	transactionService := services.NewTransactionService(
		transactionRepo, accountRepo, categoryRepo, publisher, metrics, activity, cfg.App, logger,
	)
	userService := services.NewUserService(
		userRepo, accountRepo, categoryRepo, txManager, activity, cfg.App, logger,
	)
	dashboardService := services.NewDashboardService(accountRepo, categoryRepo, transactionRepo, userService, logger)
	authService := services.NewAuthService(
		userRepo, blacklistedTokenRepo, passwordService, tokenService, userService, metrics, activity, logger,
	)

	acts := actions.New(accountService, categoryService, transactionService, userService, dashboardService, metrics, logger)

	router := &handlers.Router{
		Accounts:     handlers.NewAccountHandler(acts),
		Categories:   handlers.NewCategoryHandler(acts),
		Transactions: handlers.NewTransactionHandler(acts),
		Users:        handlers.NewUserHandler(acts),
		Dashboard:    handlers.NewDashboardHandler(acts),
		Auth:         handlers.NewAuthHandler(authService, tokenService, &cfg.JWT),
		Health:       handlers.NewHealthCheckHandler(db.DB),
	}
	if cfg.IsDevelopment() {
		router.Dev = handlers.NewDevHandler(acts, services.NewTransactionGenerator(0))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, 0)
	rateLimiter.StartCleanup(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSAllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(rateLimiter.Middleware())

	router.Register(e, middleware.RequireAuth(tokenService, blacklistedTokenRepo, cfg.JWT.CookieName))

	go cleanupExpiredTokens(ctx, db, logger)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting finance-tracker server", "addr", addr, "environment", cfg.Server.Environment)
		serverErr <- e.Start(addr)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server on %s stopped: %w", addr, err)
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func cleanupExpiredTokens(ctx context.Context, db *database.DB, logger *slog.Logger) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := db.CleanupExpiredTokens(ctx)
			if err != nil {
				logger.Error("Failed to clean up expired tokens", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("Removed expired blacklisted tokens", "count", removed)
			}
		}
	}
}
