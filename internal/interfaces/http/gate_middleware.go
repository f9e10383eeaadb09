package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/navigation"
)

// GateRecorder recibe cada decisión del gate (métricas).
type GateRecorder interface {
	RecordGate(requirement, action string)
}

// Gate aplica navigation.Decide a la sesión de la petición. Debe usarse
// DESPUÉS de Console.
//
// Comportamiento:
//   - Render      → c.Next().
//   - Placeholder → 202 {"status":"loading"}, sin redirección.
//   - Redirect    → 302 con Location.
func Gate(req navigation.Requirement, rec GateRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := navigation.Decide(StoreFrom(c).Snapshot(), req)
		if rec != nil {
			rec.RecordGate(req.String(), d.Action.String())
		}
		switch d.Action {
		case navigation.Placeholder:
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "loading"})
		case navigation.Redirect:
			return c.Redirect(d.Location, fiber.StatusFound)
		}
		return c.Next()
	}
}
