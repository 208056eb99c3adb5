package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

// ProductService casos de uso del catálogo que expone el handler.
type ProductService interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error)
	FindOnePlain(ctx context.Context, term string) (*dto.ProductResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Remove(ctx context.Context, id string) error
}

// CatalogExporter exportaciones del catálogo.
type CatalogExporter interface {
	CatalogPDF(ctx context.Context) ([]byte, string, error)
	Feed(ctx context.Context) ([]byte, string, error)
}

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc      ProductService
	exports CatalogExporter
}

// NewProductHandler construye el handler.
func NewProductHandler(uc ProductService, exports CatalogExporter) *ProductHandler {
	return &ProductHandler{uc: uc, exports: exports}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(10)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}   dto.ProductResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "limit y offset deben ser enteros")
	}
	if err := dto.Validate(page); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FindOne godoc
// @Summary      Obtener producto por ID, slug o título
// @Tags         products
// @Produce      json
// @Param        term  path  string  true  "UUID, slug o título"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{term} [get]
func (h *ProductHandler) FindOne(c *fiber.Ctx) error {
	out, err := h.uc.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. Si viene images (aunque sea []) reemplaza todas las imágenes.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto (UUID)"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := uuidParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	// Cuerpo vacío = update sin campos, no es error.
	var in dto.UpdateProductRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar producto
// @Tags         products
// @Param        id   path  string  true  "ID del producto (UUID)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	id, ok := uuidParam(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "id debe ser un UUID")
	}
	if err := h.uc.Remove(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// CatalogPDF godoc
// @Summary      Descargar catálogo en PDF
// @Tags         exports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/products/catalog.pdf [get]
func (h *ProductHandler) CatalogPDF(c *fiber.Ctx) error {
	b, filename, err := h.exports.CatalogPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// Feed godoc
// @Summary      Feed RSS de productos (Google Merchant)
// @Tags         exports
// @Produce      application/xml
// @Param        If-None-Match  header  string  false  "ETag de una respuesta anterior"
// @Success      200  {string}  string
// @Success      304
// @Router       /api/products/feed.xml [get]
func (h *ProductHandler) Feed(c *fiber.Ctx) error {
	body, etag, err := h.exports.Feed(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderETag, etag)
	if etagMatches(c.Get(fiber.HeaderIfNoneMatch), etag) {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(body)
}

// etagMatches evalúa If-None-Match con comparación débil: lista separada por comas, W/ y "*".
func etagMatches(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || (tag != "" && strings.TrimPrefix(tag, "W/") == want) {
			return true
		}
	}
	return false
}

// uuidParam lee :id y exige un UUID canónico.
func uuidParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if len(id) != 36 {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
