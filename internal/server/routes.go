package server

import (
	"github.com/labstack/echo/v4"

	"example.com/moneyquest/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	transactionHandler *handlers.TransactionHandler,
	budgetHandler *handlers.BudgetHandler,
	alertHandler *handlers.AlertHandler,
	goalHandler *handlers.GoalHandler,
	lessonHandler *handlers.LessonHandler,
	challengeHandler *handlers.ChallengeHandler,
	gamificationHandler *handlers.GamificationHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/export/json", transactionHandler.ExportJSON)
	transactions.GET("/export/csv", transactionHandler.ExportCSV)
	transactions.DELETE("/:id", transactionHandler.Delete)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("/overview", budgetHandler.Overview)
	budgets.PUT("", budgetHandler.Upsert)
	budgets.DELETE("/:id", budgetHandler.Delete)
	budgets.PATCH("/:id/toggle", budgetHandler.Toggle)

	alerts := api.Group("/alerts", authMiddleware)
	alerts.GET("", alertHandler.List)
	alerts.PATCH("/:id/read", alertHandler.MarkRead)
	alerts.POST("/read-all", alertHandler.MarkAllRead)

	goals := api.Group("/goals", authMiddleware)
	goals.GET("", goalHandler.List)
	goals.POST("", goalHandler.Create)
	goals.PATCH("/:id/deposit", goalHandler.Deposit)
	goals.DELETE("/:id", goalHandler.Delete)

	lessons := api.Group("/lessons", authMiddleware)
	lessons.POST("/complete", lessonHandler.Complete)

	challengeGroup := api.Group("/challenges", authMiddleware)
	challengeGroup.GET("", challengeHandler.List)
	challengeGroup.GET("/stats", challengeHandler.Stats)
	challengeGroup.POST("/:id/claim", challengeHandler.Claim)

	gamificationGroup := api.Group("/gamification", authMiddleware)
	gamificationGroup.GET("/profile", gamificationHandler.Profile)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/spending-by-category", statsHandler.SpendingByCategory)
	stats.GET("/monthly-comparison", statsHandler.MonthlyComparison)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/usage", adminHandler.Usage)
	admin.POST("/challenges/rotate", adminHandler.RotateChallenges)
}
