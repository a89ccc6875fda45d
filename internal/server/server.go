package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/moneyquest/backend/internal/auth"
	"example.com/moneyquest/backend/internal/budget"
	"example.com/moneyquest/backend/internal/challenges"
	"example.com/moneyquest/backend/internal/config"
	"example.com/moneyquest/backend/internal/gamification"
	"example.com/moneyquest/backend/internal/handlers"
	"example.com/moneyquest/backend/internal/notifications"
	"example.com/moneyquest/backend/internal/outbox"
	"example.com/moneyquest/backend/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
// Вторым значением возвращается воркер outbox, его запускает main.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) (*echo.Echo, *outbox.Worker) {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	budgetLimitRepo := repository.NewBudgetLimitRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	notificationHub := notifications.NewHub()

	budgetEngine := budget.NewEngine(budgetLimitRepo, transactionRepo)
	alertEmitter := budget.NewAlertEmitter(budgetEngine, alertRepo, notificationHub, logger)
	challengeEngine := challenges.NewEngine(challenges.NewRegistry(), challengeRepo, notificationHub, logger)
	gamificationEngine := gamification.NewEngine(statsRepo, challengeEngine, notificationHub, logger)
	outboxWorker := outbox.NewWorker(outboxRepo, gamificationEngine, cfg.Worker, logger)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo, budgetEngine, alertEmitter, challengeEngine, gamificationEngine, logger)
	budgetHandler := handlers.NewBudgetHandler(budgetLimitRepo, budgetEngine)
	alertHandler := handlers.NewAlertHandler(alertRepo)
	goalHandler := handlers.NewGoalHandler(goalRepo, challengeEngine, gamificationEngine, logger)
	lessonHandler := handlers.NewLessonHandler(lessonRepo, challengeEngine, gamificationEngine, logger)
	challengeHandler := handlers.NewChallengeHandler(challengeEngine)
	gamificationHandler := handlers.NewGamificationHandler(gamificationEngine)
	statsHandler := handlers.NewStatsHandler(transactionRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)
	adminHandler := handlers.NewAdminHandler(adminRepo, challengeEngine)

	registerRoutes(
		e,
		authHandler,
		transactionHandler,
		budgetHandler,
		alertHandler,
		goalHandler,
		lessonHandler,
		challengeHandler,
		gamificationHandler,
		statsHandler,
		notificationHandler,
		adminHandler,
		auth.JWTMiddleware(tokenManager),
		handlers.AdminMiddleware(userRepo, cfg.Admin.Emails),
		authRateLimiter(cfg.Auth),
	)

	return e, outboxWorker
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
