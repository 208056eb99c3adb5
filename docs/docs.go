// Package docs contiene la especificación Swagger 2.0 de la API, servida en /docs.
// Mantener sincronizada con las anotaciones godoc de internal/interfaces/http.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Listar productos",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Límite", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Crear producto",
                "parameters": [
                    {"description": "Datos del producto", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/catalog.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["exports"],
                "summary": "Descargar catálogo en PDF",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/products/feed.xml": {
            "get": {
                "produces": ["application/xml"],
                "tags": ["exports"],
                "summary": "Feed RSS de productos (Google Merchant)",
                "parameters": [
                    {"type": "string", "description": "ETag de una respuesta anterior", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "304": {"description": "Not Modified"}
                }
            }
        },
        "/api/products/{term}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Obtener producto por ID, slug o título",
                "parameters": [
                    {"type": "string", "description": "UUID, slug o título", "name": "term", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/products/{id}": {
            "patch": {
                "description": "Actualización parcial. Si viene images (aunque sea []) reemplaza todas las imágenes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Actualizar producto",
                "parameters": [
                    {"type": "string", "description": "ID del producto (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Datos a actualizar", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["products"],
                "summary": "Eliminar producto",
                "parameters": [
                    {"type": "string", "description": "ID del producto (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/seed": {
            "get": {
                "description": "Borra todos los productos y crea los de ejemplo. No disponible en producción.",
                "produces": ["text/plain"],
                "tags": ["seed"],
                "summary": "Recargar catálogo de ejemplo",
                "responses": {
                    "200": {"description": "SEED EXECUTED", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateProductRequest": {
            "type": "object",
            "required": ["gender", "price", "sizes", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200, "minLength": 1},
                "price": {"type": "number", "minimum": 0},
                "description": {"type": "string", "maxLength": 4000},
                "slug": {"type": "string", "maxLength": 200},
                "stock": {"type": "integer", "minimum": 0},
                "sizes": {"type": "array", "items": {"type": "string"}},
                "gender": {"type": "string", "enum": ["men", "women", "kid", "unisex"]},
                "tags": {"type": "array", "items": {"type": "string"}},
                "images": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200, "minLength": 1},
                "price": {"type": "number", "minimum": 0},
                "description": {"type": "string", "maxLength": 4000},
                "slug": {"type": "string", "maxLength": 200, "minLength": 1},
                "stock": {"type": "integer", "minimum": 0},
                "sizes": {"type": "array", "items": {"type": "string"}},
                "gender": {"type": "string", "enum": ["men", "women", "kid", "unisex"]},
                "tags": {"type": "array", "items": {"type": "string"}},
                "images": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "stock": {"type": "integer"},
                "sizes": {"type": "array", "items": {"type": "string"}},
                "gender": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "images": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo información exportada de la especificación; main ajusta Host y Version.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalogo API",
	Description:      "Catálogo de productos: CRUD con imágenes, búsqueda por id, slug o título y exportaciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
