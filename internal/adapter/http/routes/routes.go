package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	_ "project_billing/docs"
	"project_billing/internal/adapter/http/handlers"
	"project_billing/internal/adapter/http/middleware"
	"project_billing/internal/adapter/persistence"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/infrastructure/metrics"
	"project_billing/internal/infrastructure/payments"
	"project_billing/internal/infrastructure/scheduler"
	"project_billing/internal/usecase"
	"project_billing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Dependencies are the collaborators NewRouter wires into the handlers. Gateway may be
// nil, in which case checkout fails with 503 unless PaymentMock is set.
type Dependencies struct {
	Store   interfaces.IStore
	Gateway interfaces.IPaymentGateway
	Config  config.Config
	Log     *logger.Logger
}

// Run opens the configured store, starts the quote expiry job and serves the API until
// ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, closeStore, err := persistence.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var gateway interfaces.IPaymentGateway
	if mp, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoToken, log); err != nil {
		log.Warn("mercado pago gateway not configured", "error", err, "mock", cfg.PaymentMock)
	} else {
		gateway = mp
	}

	deps := Dependencies{Store: store, Gateway: gateway, Config: cfg, Log: log}
	router := NewRouter(deps)

	jobs := scheduler.New(log)
	if err := jobs.ScheduleQuoteExpiry(cfg.QuoteExpiryCron, usecase.NewQuoteUseCase(store, log)); err != nil {
		return err
	}
	jobs.Start()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	jobs.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}

	router := gin.New()
	setMiddlewares(router, deps.Config, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Config.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	getRoutes(router, deps, log)
	return router
}

func getRoutes(router *gin.Engine, deps Dependencies, log *logger.Logger) {
	store := deps.Store

	projectUseCase := usecase.NewProjectUseCase(store, usecase.NewTaskGenerator(), log)
	projectServiceUseCase := usecase.NewProjectServiceUseCase(store, log)
	quoteUseCase := usecase.NewQuoteUseCase(store, log)
	invoiceUseCase := usecase.NewInvoiceUseCase(store, log)
	summaryUseCase := usecase.NewBillingSummaryUseCase(store, log)
	checkoutUseCase := usecase.NewCheckoutUseCase(store, deps.Gateway, usecase.CheckoutConfig{
		Mock:            deps.Config.PaymentMock,
		AccessToken:     deps.Config.MercadoPagoToken,
		TestPayerEmail:  deps.Config.TestPayerEmail,
		TestPayerUserID: deps.Config.TestPayerUserID,
	}, log)

	projectHandler := handlers.NewProjectHandler(projectUseCase, summaryUseCase)
	projectServiceHandler := handlers.NewProjectServiceHandler(projectServiceUseCase)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase, checkoutUseCase, log)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	secured := v1.Group("")
	secured.Use(middleware.Identity(deps.Config.JWTSecret))
	addProjectRoutes(secured, projectHandler, projectServiceHandler)
	addBillingRoutes(secured, projectHandler, quoteHandler, invoiceHandler)
}

func setMiddlewares(router *gin.Engine, cfg config.Config, log *logger.Logger) {
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}
}
