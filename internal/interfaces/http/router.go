package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Normalizer   *billing.Normalizer
	Orchestrator *billing.Orchestrator
	InvoiceQuery *usecase.InvoiceQuery
	PDFUC        *usecase.PDFUseCase
	CustomerUC   *usecase.CustomerUseCase
	ProductUC    *usecase.ProductUseCase
	Tokens       TokenProvider
}

// Router registra las rutas de la API. Las rutas que contactan a Factus
// reenvían el header Authorization tal cual; las demás son públicas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Normalizer, deps.Orchestrator, deps.InvoiceQuery, deps.PDFUC)
	invoices.Post("/local", invoiceHandler.CreateLocal)
	invoices.Post("/validate", invoiceHandler.Validate)
	invoices.Post("/create-and-validate", invoiceHandler.CreateAndValidate)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Factus auxiliares
	factusGroup := api.Group("/factus")
	factusHandler := NewFactusHandler(deps.Tokens)
	factusGroup.Post("/token", factusHandler.Token)
}
