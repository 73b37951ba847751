// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/branchledger/backend/internal/integration/entrypoint/controller"
	"github.com/branchledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	transactionController  *controller.TransactionController
	dailyBalanceController *controller.DailyBalanceController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	transactionController *controller.TransactionController,
	dailyBalanceController *controller.DailyBalanceController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		transactionController:  transactionController,
		dailyBalanceController: dailyBalanceController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/token", r.loginRateLimiter.Middleware(), r.authController.IssueToken)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/bulk-historical", r.transactionController.BulkUpdateHistorical)
			}
		}

		if r.dailyBalanceController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("/:id/daily-balances/:date", r.dailyBalanceController.Calculate)
				accounts.POST("/:id/daily-balances/:date/close", r.dailyBalanceController.Close)
				accounts.POST("/:id/daily-balances/:date/auto-close", r.dailyBalanceController.AutoClose)
				accounts.POST("/:id/daily-balances/:date/reopen", r.dailyBalanceController.Reopen)
				accounts.POST("/:id/daily-balances/recalculate", r.dailyBalanceController.RecalculateFrom)
			}
		}
	}
}
