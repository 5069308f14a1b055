package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountingapp "github.com/vansales/backend/internal/application/accounting"
	inventoryapp "github.com/vansales/backend/internal/application/inventory"
	"github.com/vansales/backend/internal/infrastructure/auth"
	"github.com/vansales/backend/internal/infrastructure/config"
	"github.com/vansales/backend/internal/infrastructure/event"
	"github.com/vansales/backend/internal/infrastructure/logger"
	"github.com/vansales/backend/internal/infrastructure/persistence"
	"github.com/vansales/backend/internal/interfaces/http/handler"
	"github.com/vansales/backend/internal/interfaces/http/middleware"
	"github.com/vansales/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting van sales ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	reportRepo := persistence.NewGormLedgerReportRepository(db.DB)
	settingRepo := persistence.NewGormValuationSettingRepository(db.DB)
	historyRepo := persistence.NewGormCostHistoryRepository(db.DB)

	// Application services
	accountService := accountingapp.NewAccountService(accountRepo)
	journalService := accountingapp.NewJournalService(entryRepo, accountRepo)
	ledgerService := accountingapp.NewLedgerService(entryRepo, accountRepo)
	reportService := accountingapp.NewReportService(reportRepo, accountRepo)
	valuationService := inventoryapp.NewValuationService(settingRepo, historyRepo)

	// Event bus. Trade collaborators publish here after their own commit;
	// the adapters turn those events into ledger entries.
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(accountingapp.NewSaleCompletedHandler(entryRepo, accountRepo, accountService, log))
	bus.Subscribe(accountingapp.NewPurchaseReceivedHandler(entryRepo, accountRepo, accountService, log))
	bus.Subscribe(accountingapp.NewSupplierPaidHandler(entryRepo, accountRepo, accountService, log))

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	router.Setup(engine, router.Config{
		Handlers: router.Handlers{
			System:    handler.NewSystemHandler(db),
			Account:   handler.NewAccountHandler(accountService),
			Journal:   handler.NewJournalHandler(journalService, ledgerService),
			Report:    handler.NewReportHandler(reportService),
			Valuation: handler.NewValuationHandler(valuationService),
		},
		JWTService: jwtService,
		CORS:       middleware.DefaultCORSConfig(),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
