package router

import (
	"github.com/gin-gonic/gin"

	"github.com/vansales/backend/internal/infrastructure/auth"
	"github.com/vansales/backend/internal/interfaces/http/handler"
	"github.com/vansales/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers wired into the route tree
type Handlers struct {
	System    *handler.SystemHandler
	Account   *handler.AccountHandler
	Journal   *handler.JournalHandler
	Report    *handler.ReportHandler
	Valuation *handler.ValuationHandler
}

// Config carries the dependencies needed to build the route tree
type Config struct {
	Handlers   Handlers
	JWTService *auth.JWTService
	CORS       middleware.CORSConfig
}

// publicPaths are API paths that do not require authentication
var publicPaths = []string{
	"/api/v1/system/ping",
	"/api/v1/system/info",
}

// Setup registers middleware and all API routes on the engine.
// The health endpoint lives outside the versioned API group so
// probes work without a token.
func Setup(engine *gin.Engine, cfg Config) {
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", cfg.Handlers.System.Health)

	api := engine.Group("/api/v1")
	if cfg.JWTService != nil {
		api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: cfg.JWTService,
			SkipPaths:  publicPaths,
		}))
	}

	registerSystemRoutes(api, cfg.Handlers.System)
	registerAccountingRoutes(api, cfg.Handlers)
	registerValuationRoutes(api, cfg.Handlers.Valuation)
}

func registerSystemRoutes(api *gin.RouterGroup, h *handler.SystemHandler) {
	system := api.Group("/system")
	system.GET("/ping", h.Ping)
	system.GET("/info", h.Info)
}

func registerAccountingRoutes(api *gin.RouterGroup, h Handlers) {
	accounting := api.Group("/accounting")

	accounting.GET("/accounts", h.Account.List)
	accounting.POST("/accounts", h.Account.Create)
	accounting.POST("/accounts/bootstrap", h.Account.Bootstrap)
	accounting.GET("/accounts/:id", h.Account.Get)
	accounting.PUT("/accounts/:id", h.Account.Update)
	accounting.DELETE("/accounts/:id", h.Account.Delete)
	accounting.GET("/accounts/:id/ledger", h.Journal.Ledger)

	accounting.POST("/journal-entries", h.Journal.Post)
	accounting.GET("/journal-entries", h.Journal.List)
	accounting.GET("/journal-entries/:id", h.Journal.Get)
	accounting.POST("/journal-entries/:id/reverse", h.Journal.Reverse)

	accounting.GET("/reports/trial-balance", h.Report.TrialBalance)
	accounting.GET("/reports/income-statement", h.Report.IncomeStatement)
	accounting.GET("/reports/balance-sheet", h.Report.BalanceSheet)
	accounting.POST("/reports/reconciliation", h.Report.Reconcile)
}

func registerValuationRoutes(api *gin.RouterGroup, h *handler.ValuationHandler) {
	valuation := api.Group("/valuation")

	valuation.GET("/settings", h.GetSettings)
	valuation.PUT("/settings", h.UpdateSettings)
	valuation.POST("/costs", h.RecordCost)
	valuation.GET("/products/:id/history", h.CostHistory)
	valuation.GET("/products/:id/cost", h.ProductCost)
}
