package http

import "github.com/gofiber/fiber/v2"

// SeedHandler expone la recarga del catálogo de ejemplo.
type SeedHandler struct {
	seed Seeder
}

// NewSeedHandler construye el handler.
func NewSeedHandler(seed Seeder) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Run godoc
// @Summary      Recargar catálogo de ejemplo
// @Description  Borra todos los productos y crea los de ejemplo. No disponible en producción.
// @Tags         seed
// @Produce      plain
// @Success      200  {string}  string  "SEED EXECUTED"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/seed [get]
func (h *SeedHandler) Run(c *fiber.Ctx) error {
	out, err := h.seed.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.SendString(out)
}
