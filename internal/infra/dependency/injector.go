// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/branchledger/backend/config"
	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/application/usecase/auth"
	"github.com/branchledger/backend/internal/application/usecase/dailybalance"
	"github.com/branchledger/backend/internal/application/usecase/transaction"
	"github.com/branchledger/backend/internal/infra/server/router"
	"github.com/branchledger/backend/internal/integration/adapters"
	"github.com/branchledger/backend/internal/integration/email"
	"github.com/branchledger/backend/internal/integration/email/templates"
	"github.com/branchledger/backend/internal/integration/entrypoint/controller"
	"github.com/branchledger/backend/internal/integration/entrypoint/middleware"
	"github.com/branchledger/backend/internal/integration/locks"
	"github.com/branchledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailQueue  adapter.EmailQueueRepository
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; the close lock then degrades to the database row
// lock alone.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	ledgerStore := persistence.NewLedgerStore(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	clock := adapter.NewSystemClock()

	var closeLock adapter.CloseLock
	if redisClient != nil {
		closeLock = locks.NewRedisCloseLock(redisClient)
	} else {
		closeLock = adapter.NewNoopCloseLock()
	}

	var notifier adapter.CloseReportNotifier
	var worker *email.Worker
	if cfg.Email.ResendAPIKey != "" {
		notifier = email.NewService(emailQueueRepo, cfg.Auth.OperatorEmail, cfg.Email.OperatorName)

		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}

	operatorID, err := uuid.Parse(cfg.Auth.OperatorID)
	if err != nil {
		slog.Warn("Operator ID missing or invalid, token issuing disabled")
		operatorID = uuid.Nil
	}

	issueTokenUseCase := auth.NewIssueTokenUseCase(
		operatorID,
		cfg.Auth.OperatorEmail,
		cfg.Auth.OperatorPasswordHash,
		passwordService,
		tokenService,
	)

	createTransactionUseCase := transaction.NewCreateTransactionUseCase(ledgerStore, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(ledgerStore, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(ledgerStore, clock)
	bulkUpdateUseCase := transaction.NewBulkUpdateHistoricalUseCase(ledgerStore, clock)

	calculateUseCase := dailybalance.NewCalculateDailyBalanceUseCase(ledgerStore)
	closeUseCase := dailybalance.NewCloseDailyBalanceUseCase(ledgerStore, closeLock, clock, notifier)
	autoCloseUseCase := dailybalance.NewAutoCloseDailyBalanceUseCase(ledgerStore, closeLock, clock, notifier)
	reopenUseCase := dailybalance.NewReopenDailyBalanceUseCase(ledgerStore)
	recalculateUseCase := dailybalance.NewRecalculateFromUseCase(ledgerStore, clock)

	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(issueTokenUseCase)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkUpdateUseCase,
	)

	dailyBalanceController := controller.NewDailyBalanceController(
		calculateUseCase,
		closeUseCase,
		autoCloseUseCase,
		reopenUseCase,
		recalculateUseCase,
	)

	// Use higher rate limits in test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		dailyBalanceController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailQueue:  emailQueueRepo,
		EmailWorker: worker,
	}, nil
}
