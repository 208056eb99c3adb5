package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

const (
	productColumns = `id, title, slug, price, description, stock, sizes, gender, tags, created_at, updated_at`

	insertProductSQL = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	getProductByTitleOrSlugSQL = `SELECT ` + productColumns + `
		FROM products WHERE LOWER(title) = $1 OR LOWER(slug) = $1 LIMIT 1`

	listProductsSQL = `SELECT ` + productColumns + `
		FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`

	updateProductSQL = `
		UPDATE products SET title = $2, slug = $3, price = $4, description = $5, stock = $6,
			sizes = $7, gender = $8, tags = $9, updated_at = $10
		WHERE id = $1`

	// Las imágenes nuevas entran en un solo INSERT; position las mantiene en el orden recibido.
	insertImagesSQL = `
		INSERT INTO product_images (product_id, url, position)
		SELECT $1, u.url, u.position FROM unnest($2::text[], $3::int[]) AS u(url, position)
		RETURNING id, position`

	listImagesSQL = `
		SELECT id, product_id, url, position FROM product_images
		WHERE product_id = ANY($1) ORDER BY product_id, position, id`

	deleteImagesSQL     = `DELETE FROM product_images WHERE product_id = $1`
	deleteProductSQL    = `DELETE FROM products WHERE id = $1`
	deleteAllProductSQL = `DELETE FROM products`
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto y sus imágenes. Debe ejecutarse dentro de un TxRunner para ser atómico.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, insertProductSQL,
		p.ID, p.Title, p.Slug, p.Price, p.Description, p.Stock,
		p.Sizes, string(p.Gender), p.Tags, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", asUniqueViolation(err))
	}
	return r.insertNewImages(ctx, p)
}

// GetByID obtiene un producto con sus imágenes. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, getProductByIDSQL, id)
}

// GetByTitleOrSlug busca por título o slug sin distinguir mayúsculas. text debe llegar en minúsculas.
func (r *ProductRepo) GetByTitleOrSlug(ctx context.Context, text string) (*entity.Product, error) {
	return r.getOne(ctx, getProductByTitleOrSlugSQL, text)
}

// List devuelve una página de productos con sus imágenes.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, listProductsSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	if err := r.loadImages(ctx, products...); err != nil {
		return nil, err
	}
	return products, nil
}

// Preload carga el producto y aplica el patch encima. (nil, nil) si no existe.
func (r *ProductRepo) Preload(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	p.Apply(patch)
	return p, nil
}

// DeleteImages borra todas las imágenes del producto.
func (r *ProductRepo) DeleteImages(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, deleteImagesSQL, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

// Save actualiza los campos escalares e inserta las imágenes que aún no tienen ID.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, updateProductSQL,
		p.ID, p.Title, p.Slug, p.Price, p.Description, p.Stock,
		p.Sizes, string(p.Gender), p.Tags, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", asUniqueViolation(err))
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update product %s: %w", p.ID, domain.ErrNotFound)
	}
	return r.insertNewImages(ctx, p)
}

// Delete elimina un producto por ID; las imágenes caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, deleteProductSQL, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteAll vacía el catálogo.
func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, deleteAllProductSQL); err != nil {
		return fmt.Errorf("delete all products: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p, err := pgx.CollectOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// insertNewImages persiste las imágenes con ID == 0 y les asigna el ID generado.
func (r *ProductRepo) insertNewImages(ctx context.Context, p *entity.Product) error {
	var (
		urls      []string
		positions []int32
		byPos     = make(map[int32]int)
	)
	for i, img := range p.Images {
		if img.ID != 0 {
			continue
		}
		urls = append(urls, img.URL)
		positions = append(positions, int32(img.Position))
		byPos[int32(img.Position)] = i
	}
	if len(urls) == 0 {
		return nil
	}

	rows, err := r.q.Query(ctx, insertImagesSQL, p.ID, urls, positions)
	if err != nil {
		return fmt.Errorf("insert product images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id  int64
			pos int32
		)
		if err := rows.Scan(&id, &pos); err != nil {
			return fmt.Errorf("scan image id: %w", err)
		}
		if i, ok := byPos[pos]; ok {
			p.Images[i].ID = id
			p.Images[i].ProductID = p.ID
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert product images: %w", err)
	}
	return nil
}

// loadImages carga en una sola consulta las imágenes de todos los productos dados.
func (r *ProductRepo) loadImages(ctx context.Context, products ...*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, 0, len(products))
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		p.Images = []entity.ProductImage{}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	rows, err := r.q.Query(ctx, listImagesSQL, ids)
	if err != nil {
		return fmt.Errorf("list product images: %w", err)
	}
	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.ProductImage, error) {
		var img entity.ProductImage
		err := row.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position)
		return img, err
	})
	if err != nil {
		return fmt.Errorf("scan product images: %w", err)
	}
	for _, img := range images {
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (*entity.Product, error) {
	var (
		p      entity.Product
		gender string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Price, &p.Description, &p.Stock,
		&p.Sizes, &gender, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Gender = entity.Gender(gender)
	return &p, err
}
