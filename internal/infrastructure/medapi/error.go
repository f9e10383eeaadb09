package medapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
)

var _ ports.MessageCarrier = (*Error)(nil)

// Error respuesta no-2xx de la API remota.
type Error struct {
	StatusCode int
	Message    string // mensaje legible del cuerpo ("message" o "error"); puede estar vacío
}

func (e *Error) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// ServerMessage mensaje del servidor, vacío si el cuerpo no traía uno.
func (e *Error) ServerMessage() string { return e.Message }

// Is permite errors.Is contra los errores de dominio según el status.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case domain.ErrUpstream:
		return e.StatusCode >= 500
	}
	return false
}

// StatusOf devuelve el status HTTP de un error de la API, 0 si no lo es.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// newError construye el error a partir del cuerpo de la respuesta.
func newError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return e
	}
	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			e.Message = strings.TrimSpace(s)
			return e
		}
		// {"error": {"message": "..."}}
		var nested struct {
			Message string `json:"message"`
		}
		if len(raw) > 0 && json.Unmarshal(raw, &nested) == nil && strings.TrimSpace(nested.Message) != "" {
			e.Message = strings.TrimSpace(nested.Message)
			return e
		}
	}
	return e
}
