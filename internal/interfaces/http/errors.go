package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Lo no clasificado sale como 500 con mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.Internal()
	}
	return c.Status(statusFor(de.Kind)).JSON(dto.ErrorResponse{Code: de.Kind.String(), Message: de.Message})
}

func statusFor(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindDuplicateKey, domain.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
