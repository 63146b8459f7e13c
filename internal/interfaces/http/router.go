package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/safetrack/safetrack-api/internal/application/alerting"
	"github.com/safetrack/safetrack-api/internal/application/auth"
	"github.com/safetrack/safetrack-api/internal/application/inventory"
	appquote "github.com/safetrack/safetrack-api/internal/application/quote"
	"github.com/safetrack/safetrack-api/internal/application/usecase"
	"github.com/safetrack/safetrack-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	OrderUC       *usecase.OrderUseCase
	ApplyOrder    *inventory.ApplyOrderUseCase
	CreateQuote   *appquote.CreateQuoteUseCase
	QuoteUC       *appquote.QuoteUseCase
	QuotePDF      *appquote.PDFUseCase
	AlertUC       *alerting.AlertUseCase
	DistributorUC *usecase.DistributorUseCase
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:sku", productHandler.GetBySKU)
	products.Put("/:sku", productHandler.Update)
	products.Put("/:sku/quantity", RequireRoles(entity.RoleAdmin, entity.RoleWarehouse), productHandler.SetQuantity)

	// Manufacturer orders
	orders := protected.Group("/manufacturer-orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ApplyOrder)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Post("/parse-document", orderHandler.ParseDocument)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/apply-inventory", RequireRoles(entity.RoleAdmin, entity.RoleWarehouse), orderHandler.ApplyInventory)

	// Quotes
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.CreateQuote, deps.QuoteUC, deps.QuotePDF)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/next-number", quoteHandler.NextNumber)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)

	// Alerts
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/reconcile", alertHandler.Reconcile)
	alerts.Patch("/:id/read", alertHandler.MarkRead)
	alerts.Patch("/:id/resolve", alertHandler.Resolve)

	// Distributors
	distributors := protected.Group("/distributors")
	distributorHandler := NewDistributorHandler(deps.DistributorUC)
	distributors.Post("/", distributorHandler.Create)
	distributors.Get("/", distributorHandler.List)
	distributors.Get("/:id", distributorHandler.GetByID)
	distributors.Put("/:id", distributorHandler.Update)
	distributors.Delete("/:id", distributorHandler.Delete)
}
