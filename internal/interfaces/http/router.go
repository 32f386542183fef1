package http

import (
	"context"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/tekeliveli/stoktakip/docs"
	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/internal/application/usecase"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC  *usecase.MaterialUseCase
	Ledger      *inventory.LedgerUseCase
	Withdrawal  *inventory.WithdrawalUseCase
	StockQuery  *inventory.StockQueryUseCase
	ReportPDF   *inventory.ReportPDFUseCase // opcional
	Log         *logger.Logger
	ServiceName string
	HealthCheck func(ctx context.Context) error // opcional: ping al store
	DocsEnabled bool                            // Swagger UI en /docs
	StaticDir   string                          // frontend servido en / (vacío = no se sirve)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.UserContext()); err != nil {
				log.Warn().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
	if deps.DocsEnabled {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
			Path:        "docs",
			Title:       "stoktakip API",
		}))
	}

	// Materiales
	materials := app.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, log)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id<int>", materialHandler.GetByID)
	materials.Put("/:id<int>", materialHandler.Update)

	// Stock: /all antes que /:material_id
	stock := app.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Withdrawal, deps.StockQuery, log)
	stock.Post("/", stockHandler.Record)
	stock.Post("/withdraw", stockHandler.Withdraw)
	stock.Get("/all", stockHandler.All)
	stock.Get("/:material_id<int>", stockHandler.Current)
	stock.Get("/:material_id<int>/movements", stockHandler.Movements)
	stock.Get("/:material_id<int>/withdrawals", stockHandler.Withdrawals)

	// Reportes
	reportHandler := NewReportHandler(deps.Ledger, deps.ReportPDF, log)
	app.Get("/report", reportHandler.Report)
	app.Get("/report/pdf", reportHandler.PDF)

	if deps.StaticDir != "" {
		app.Static("/", deps.StaticDir)
	}
}
