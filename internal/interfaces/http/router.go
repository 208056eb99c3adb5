package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

// Seeder recarga el catálogo de ejemplo.
type Seeder interface {
	Run(ctx context.Context) (string, error)
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Products    ProductService
	Exports     CatalogExporter
	Seed        Seeder                          // nil = /api/seed no se registra (producción)
	Ping        func(ctx context.Context) error // chequeo de la base para /health
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Products, deps.Exports)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// Antes de /:term para que no se traten como término de búsqueda.
	products.Get("/catalog.pdf", productHandler.CatalogPDF)
	products.Get("/feed.xml", productHandler.Feed)
	products.Get("/:term", productHandler.FindOne)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Remove)

	if deps.Seed != nil {
		api.Get("/seed", NewSeedHandler(deps.Seed).Run)
	}
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "db_unavailable", Service: deps.ServiceName})
			}
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	}
}
