package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/abasto-api/internal/application/auth"
	"github.com/jhoicas/abasto-api/internal/application/ingest"
	"github.com/jhoicas/abasto-api/internal/application/ports"
	"github.com/jhoicas/abasto-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	ScanUC      *usecase.ScanUseCase
	ReconcileUC *ingest.ReconcileUseCase
	ImportUC    *usecase.ImportUseCase
	SupplierUC  *usecase.SupplierUseCase
	ActivityUC  *usecase.ActivityUseCase
	ReportUC    *usecase.ReportUseCase
	AuthUC      *auth.AuthUseCase
	Rates       ports.RateSource
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/stock-out", productHandler.StockOut)

	// Scan de facturas (protegido)
	scanHandler := NewScanHandler(deps.ScanUC, deps.ReconcileUC)
	protected.Post("/scan", scanHandler.Scan)
	protected.Post("/scan/confirm", scanHandler.Confirm)

	// Import/Export CSV (protegido)
	importHandler := NewImportHandler(deps.ImportUC)
	protected.Post("/import/csv", importHandler.ImportCSV)
	protected.Get("/export/csv", importHandler.ExportCSV)

	// Suppliers (protegido, solo lectura)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	protected.Get("/suppliers", supplierHandler.List)

	// Activity log (protegido)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/stock.pdf", reportHandler.StockPDF)

	// Tasa de cambio (protegido)
	rateHandler := NewRateHandler(deps.Rates)
	protected.Get("/rates/current", rateHandler.Current)
}
