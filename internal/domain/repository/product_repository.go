package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe; las imágenes siempre vienen cargadas y ordenadas.
// Las escrituras devuelven *domain.UniqueViolationError ante un título o slug repetido.
type ProductRepository interface {
	// Create inserta el producto y sus imágenes. La atomicidad la da el TxRunner que lo envuelve.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByTitleOrSlug compara text (ya en minúsculas) contra LOWER(title) y LOWER(slug).
	GetByTitleOrSlug(ctx context.Context, text string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Preload carga el producto persistido y aplica encima los campos presentes en patch.
	Preload(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	DeleteImages(ctx context.Context, productID string) error
	// Save actualiza los escalares e inserta las imágenes con ID == 0.
	// Devuelve domain.ErrNotFound si la fila ya no existe.
	Save(ctx context.Context, product *entity.Product) error
	// Delete no verifica filas afectadas: borrar un id inexistente no es error.
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
