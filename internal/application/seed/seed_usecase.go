// Package seed recarga el catálogo con un juego de productos de ejemplo. Solo para desarrollo.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// Executed respuesta de una carga exitosa.
const Executed = "SEED EXECUTED"

//go:embed data/products.json
var productsJSON []byte

// Catalog operaciones del catálogo que usa la carga.
type Catalog interface {
	DeleteAllProducts(ctx context.Context) error
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// SeedUseCase vacía el catálogo e inserta los productos de ejemplo.
type SeedUseCase struct {
	catalog  Catalog
	products []dto.CreateProductRequest
	log      *logger.Logger
}

// NewSeedUseCase construye la carga con los productos embebidos.
func NewSeedUseCase(catalog Catalog, log *logger.Logger) (*SeedUseCase, error) {
	products, err := Products()
	if err != nil {
		return nil, err
	}
	return &SeedUseCase{catalog: catalog, products: products, log: log.Component("seed")}, nil
}

// Products decodifica el juego de datos embebido.
func Products() ([]dto.CreateProductRequest, error) {
	var products []dto.CreateProductRequest
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("seed: decodificar productos: %w", err)
	}
	return products, nil
}

// Run borra todos los productos y crea los de ejemplo uno a uno. Se detiene en el primer error.
func (uc *SeedUseCase) Run(ctx context.Context) (string, error) {
	if err := uc.catalog.DeleteAllProducts(ctx); err != nil {
		return "", err
	}
	for _, p := range uc.products {
		if _, err := uc.catalog.Create(ctx, p); err != nil {
			return "", err
		}
	}
	uc.log.Info().Int("products", len(uc.products)).Msg("seed ejecutado")
	return Executed, nil
}
