package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/pkg/slug"
)

// Gender público objetivo del producto.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKid    Gender = "kid"
	GenderUnisex Gender = "unisex"
)

// Valid indica si g es uno de los valores admitidos.
func (g Gender) Valid() bool {
	switch g {
	case GenderMen, GenderWomen, GenderKid, GenderUnisex:
		return true
	}
	return false
}

// Product es el agregado del catálogo: el producto y sus imágenes, que se persisten como unidad.
// Title y Slug son únicos en todo el catálogo.
type Product struct {
	ID          string
	Title       string
	Slug        string
	Price       decimal.Decimal
	Description string
	Stock       int
	Sizes       []string
	Gender      Gender
	Tags        []string
	Images      []ProductImage // en orden de Position
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage pertenece exclusivamente a un Product. ID == 0 significa "aún no persistida".
type ProductImage struct {
	ID        int64
	ProductID string
	URL       string
	Position  int
}

// ProductPatch actualización parcial: nil = campo omitido.
// Images distingue "omitido" (nil) de "lista vacía" (&[]string{}), que sí reemplaza las imágenes.
type ProductPatch struct {
	Title       *string
	Slug        *string
	Price       *decimal.Decimal
	Description *string
	Stock       *int
	Sizes       *[]string
	Gender      *Gender
	Tags        *[]string
	Images      *[]string
}

// NewImages construye imágenes sin ID a partir de URLs, conservando el orden.
func NewImages(productID string, urls []string) []ProductImage {
	images := make([]ProductImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, ProductImage{ProductID: productID, URL: u, Position: i})
	}
	return images
}

// Apply copia sobre p los campos escalares presentes en patch. Las imágenes no se tocan aquí:
// su reemplazo requiere borrar filas y se hace dentro de la transacción de actualización.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Sizes != nil {
		p.Sizes = append([]string(nil), (*patch.Sizes)...)
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
}

// Normalize deriva el slug del título si falta, lo normaliza y garantiza colecciones no nulas
// (las columnas TEXT[] son NOT NULL). Si no queda ningún carácter válido el slug es el ID,
// así nunca se guarda "" en una columna UNIQUE.
func (p *Product) Normalize() {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = slug.Make(p.Slug)
	if p.Slug == "" {
		p.Slug = p.ID
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	for i := range p.Images {
		p.Images[i].ProductID = p.ID
		p.Images[i].Position = i
	}
}

// ImageURLs denormaliza las imágenes a sus URLs, en orden.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
