package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Title       string           `json:"title" validate:"required,min=1,max=200"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0" swaggertype:"number"`
	Description string           `json:"description" validate:"max=4000"`
	Slug        string           `json:"slug" validate:"omitempty,max=200"`
	Stock       int              `json:"stock" validate:"gte=0"`
	Sizes       []string         `json:"sizes" validate:"required,dive,required"`
	Gender      string           `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string         `json:"tags" validate:"omitempty,dive,required"`
	Images      []string         `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest entrada para actualizar un producto: todos los campos son opcionales.
// Images nil = no tocar imágenes; Images = [] = borrar todas.
type UpdateProductRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0" swaggertype:"number"`
	Description *string          `json:"description" validate:"omitempty,max=4000"`
	Slug        *string          `json:"slug" validate:"omitempty,min=1,max=200"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Sizes       *[]string        `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string          `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        *[]string        `json:"tags" validate:"omitempty,dive,required"`
	Images      *[]string        `json:"images" validate:"omitempty,dive,required"`
}

// ProductResponse salida de un producto. Las imágenes se exponen solo como URLs, en orden.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Sizes       []string        `json:"sizes"`
	Gender      string          `json:"gender"`
	Tags        []string        `json:"tags"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
