package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de productos atado a ella.
// Si fn devuelve error la transacción se revierte y el error se propaga sin cambios.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// CatalogSheet es la vista del catálogo que reciben los exportadores.
type CatalogSheet struct {
	Title       string
	Link        string
	Currency    string
	GeneratedAt time.Time
	Items       []CatalogItem
}

// CatalogItem un producto listo para exportar, con enlaces absolutos.
type CatalogItem struct {
	Product   dto.ProductResponse
	Link      string
	ImageURLs []string
}

// CatalogPDFGenerator genera la hoja de catálogo en PDF.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, sheet CatalogSheet) ([]byte, error)
}

// ProductFeedBuilder construye el feed XML de productos. etag identifica el contenido
// canónico: dos documentos equivalentes producen el mismo etag.
type ProductFeedBuilder interface {
	BuildFeed(ctx context.Context, sheet CatalogSheet) (body []byte, etag string, err error)
}
