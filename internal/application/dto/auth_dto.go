package dto

import (
	"encoding/json"

	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// LoginRequest credenciales enviadas a POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida de la API remota: token bearer + registro del usuario.
// User se conserva crudo para persistirlo sin pérdida de campos.
type LoginResponse struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// RegisterRequest campos de registro; se reenvían sin modificar.
type RegisterRequest map[string]any

// ResultResponse resultado de login/register/logout hacia el navegador.
type ResultResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Navigate string `json:"navigate,omitempty"`
}

// SessionResponse vista de la sesión expuesta a los consumidores.
type SessionResponse struct {
	User            *entity.Identity `json:"user"`
	Token           string           `json:"token,omitempty"`
	Loading         bool             `json:"loading"`
	IsAuthenticated bool             `json:"isAuthenticated"`
	IsPatient       bool             `json:"isPatient"`
	IsCaretaker     bool             `json:"isCaretaker"`
	IsDonor         bool             `json:"isDonor"`
	IsAdmin         bool             `json:"isAdmin"`
}
