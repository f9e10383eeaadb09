package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// HomeHandler inicios de los roles sin pantallas de administración.
type HomeHandler struct{}

// NewHomeHandler construye el handler.
func NewHomeHandler() *HomeHandler { return &HomeHandler{} }

// For devuelve el handler de inicio de role.
// @Summary      Inicio de rol
// @Tags         home
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /patient/dashboard [get]
// @Router       /caretaker/dashboard [get]
// @Router       /donor/dashboard [get]
func (h *HomeHandler) For(role entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"page": string(role) + "-dashboard",
			"user": StoreFrom(c).Snapshot().User,
		})
	}
}
