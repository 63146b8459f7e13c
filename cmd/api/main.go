package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/safetrack/safetrack-api/internal/application/alerting"
	"github.com/safetrack/safetrack-api/internal/application/auth"
	"github.com/safetrack/safetrack-api/internal/application/inventory"
	appquote "github.com/safetrack/safetrack-api/internal/application/quote"
	"github.com/safetrack/safetrack-api/internal/application/usecase"
	infraai "github.com/safetrack/safetrack-api/internal/infrastructure/ai"
	infrapdf "github.com/safetrack/safetrack-api/internal/infrastructure/pdf"
	"github.com/safetrack/safetrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/safetrack/safetrack-api/internal/interfaces/http"
	"github.com/safetrack/safetrack-api/pkg/config"
	"github.com/safetrack/safetrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	distributorRepo := postgres.NewDistributorRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockAlertsUC := alerting.NewStockAlertUseCase(productRepo, alertRepo, log)
	quoteAlertsUC := alerting.NewQuoteAlertUseCase(quoteRepo, alertRepo, log)
	alertUC := alerting.NewAlertUseCase(alertRepo, stockAlertsUC, quoteAlertsUC)

	applyOrderUC := inventory.NewApplyOrderUseCase(orderRepo, productRepo, stockAlertsUC, log)
	productUC := usecase.NewProductUseCase(productRepo, stockAlertsUC, log)
	distributorUC := usecase.NewDistributorUseCase(distributorRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	orderUC := usecase.NewOrderUseCase(orderRepo, anthropicSvc)

	createQuoteUC := appquote.NewCreateQuoteUseCase(txRunner, quoteRepo, log)
	quoteUC := appquote.NewQuoteUseCase(quoteRepo, quoteAlertsUC, log)
	pdfGenerator := infrapdf.NewMarotoQuoteGenerator()
	quotePDFUC := appquote.NewPDFUseCase(quoteRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Background alert reconciliation loop; stops on shutdown via ctx.
	scheduler := alerting.NewScheduler(
		stockAlertsUC, quoteAlertsUC,
		time.Duration(cfg.Reconcile.IntervalMinutes)*time.Minute,
		log,
	)
	go scheduler.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SafeTrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		OrderUC:       orderUC,
		ApplyOrder:    applyOrderUC,
		CreateQuote:   createQuoteUC,
		QuoteUC:       quoteUC,
		QuotePDF:      quotePDFUC,
		AlertUC:       alertUC,
		DistributorUC: distributorUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
