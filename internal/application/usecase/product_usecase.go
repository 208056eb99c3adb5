package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ProductUseCase casos de uso del catálogo: alta, consulta, actualización y borrado de productos con sus imágenes.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   TxRunner
	log  *logger.Logger
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewProductUseCase(repo repository.ProductRepository, tx TxRunner, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, tx: tx, log: log.Component("products"), now: time.Now}
}

// Create persiste el producto y sus imágenes en una sola transacción.
// La respuesta lleva las URLs recibidas, no las releídas de la base.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.InvalidInput("%v", err)
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}
	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Slug:        in.Slug,
		Price:       price,
		Description: in.Description,
		Stock:       in.Stock,
		Sizes:       append([]string(nil), in.Sizes...),
		Gender:      entity.Gender(in.Gender),
		Tags:        append([]string(nil), in.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.Images = entity.NewImages(product.ID, images)
	product.Normalize()

	err := uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		return products.Create(ctx, product)
	})
	if err != nil {
		return nil, uc.handleDBError(err)
	}

	uc.log.Info().Str("product_id", product.ID).Str("slug", product.Slug).Msg("producto creado")

	out := toProductResponse(product)
	out.Images = append([]string{}, images...)
	return out, nil
}

// List devuelve una página del catálogo. Limit por defecto 10, offset 0, sin tope.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, uc.handleDBError(err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// FindOne busca por UUID o, si term no lo es, por título o slug sin distinguir mayúsculas.
func (uc *ProductUseCase) FindOne(ctx context.Context, term string) (*entity.Product, error) {
	var (
		product *entity.Product
		err     error
	)
	switch l := ParseLookup(term).(type) {
	case LookupByID:
		product, err = uc.repo.GetByID(ctx, l.ID.String())
	case LookupByText:
		product, err = uc.repo.GetByTitleOrSlug(ctx, strings.ToLower(l.Text))
	default:
		return nil, uc.handleDBError(errors.New("estrategia de búsqueda desconocida"))
	}
	if err != nil {
		return nil, uc.handleDBError(err)
	}
	if product == nil {
		return nil, domain.NotFound("producto con término %q no encontrado", term)
	}
	return product, nil
}

// FindOnePlain es FindOne con las imágenes reducidas a URLs.
func (uc *ProductUseCase) FindOnePlain(ctx context.Context, term string) (*dto.ProductResponse, error) {
	product, err := uc.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. Si in.Images viene (aunque sea vacía) las imágenes
// anteriores se borran y se reemplazan en el orden dado; todo dentro de una transacción.
// Devuelve el producto releído tras el commit.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.InvalidInput("%v", err)
	}
	notFound := domain.NotFound("producto con id %s no encontrado", id)
	if _, ok := parseUUID(id); !ok {
		return nil, notFound
	}

	patch := toProductPatch(in)
	product, err := uc.repo.Preload(ctx, id, patch)
	if err != nil {
		return nil, uc.handleDBError(err)
	}
	if product == nil {
		return nil, notFound
	}
	product.UpdatedAt = uc.now()

	err = uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		if patch.Images != nil {
			if err := products.DeleteImages(ctx, product.ID); err != nil {
				return err
			}
			product.Images = entity.NewImages(product.ID, *patch.Images)
		}
		product.Normalize()
		return products.Save(ctx, product)
	})
	if err != nil {
		// Borrado concurrente entre el preload y el save.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound
		}
		return nil, uc.handleDBError(err)
	}

	uc.log.Info().Str("product_id", product.ID).Bool("images_replaced", patch.Images != nil).Msg("producto actualizado")

	return uc.FindOnePlain(ctx, product.ID)
}

// Remove borra el producto y, en cascada, sus imágenes. Un id inexistente no es error.
func (uc *ProductUseCase) Remove(ctx context.Context, id string) error {
	if _, ok := parseUUID(id); !ok {
		return nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.handleDBError(err)
	}
	return nil
}

// DeleteAllProducts vacía el catálogo. Solo para desarrollo (seed).
func (uc *ProductUseCase) DeleteAllProducts(ctx context.Context) error {
	if err := uc.repo.DeleteAll(ctx); err != nil {
		return uc.handleDBError(err)
	}
	return nil
}

// handleDBError clasifica un error de persistencia: la violación de unicidad sale con el
// detalle de Postgres; cualquier otra cosa se registra completa y sale como Internal.
func (uc *ProductUseCase) handleDBError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	var uv *domain.UniqueViolationError
	if errors.As(err, &uv) {
		return domain.DuplicateKey(uv.Detail)
	}
	uc.log.Error().Err(err).Msg("error inesperado en el catálogo")
	return domain.Internal()
}

func toProductPatch(in dto.UpdateProductRequest) entity.ProductPatch {
	patch := entity.ProductPatch{
		Title:       in.Title,
		Slug:        in.Slug,
		Price:       in.Price,
		Description: in.Description,
		Stock:       in.Stock,
		Sizes:       in.Sizes,
		Tags:        in.Tags,
		Images:      in.Images,
	}
	if in.Gender != nil {
		g := entity.Gender(*in.Gender)
		patch.Gender = &g
	}
	return patch
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Sizes:       nonNil(p.Sizes),
		Gender:      string(p.Gender),
		Tags:        nonNil(p.Tags),
		Images:      p.ImageURLs(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
