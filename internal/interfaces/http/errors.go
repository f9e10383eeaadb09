package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
	"github.com/jhoicas/medicare-console/internal/infrastructure/medapi"
)

// writeError traduce err a dto.ErrorResponse.
//
//   - validaciones de la consola → 400 (403 para el cambio de estado de un admin)
//     con su propio mensaje.
//   - error de la API remota 4xx → mismo status, mensaje del servidor o fallback.
//   - API remota 5xx o sin respuesta → 502 con fallback.
//   - cualquier otro → 500 con fallback.
func writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrAdminStatusChange):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingPatient), errors.Is(err, domain.ErrMissingDonationFld):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	status := medapi.StatusOf(err)
	if status == 0 {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: fallback})
		}
		if errors.Is(err, domain.ErrUpstream) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: fallback})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: fallback})
	}

	msg := fallback
	var mc ports.MessageCarrier
	if errors.As(err, &mc) && strings.TrimSpace(mc.ServerMessage()) != "" {
		msg = mc.ServerMessage()
	}
	if status >= 500 {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: msg})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: codeFor(status), Message: msg})
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	}
	return "BAD_REQUEST"
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
}

// bearer token de la sesión de la petición.
func bearer(c *fiber.Ctx) string {
	return StoreFrom(c).Snapshot().Token
}
