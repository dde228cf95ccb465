package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "project_billing/docs"
	"project_billing/internal/adapter/http/routes"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Project Billing API
// @version         1.0
// @description     Project billing engine: pricing, quotes, invoices, deposits and billing summaries.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
