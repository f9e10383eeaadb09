// Package session contiene el ciclo de vida de la sesión de la consola:
// arranque (borrado en primera carga o restauración), login, registro y logout,
// con escritura conjunta de token + identidad en memoria y en almacenamiento durable.
package session

import (
	"fmt"

	"github.com/jhoicas/medicare-console/internal/domain"
	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// Status estado del ciclo de vida de la sesión.
type Status int

const (
	StatusUninitialized Status = iota
	StatusRestoring
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusRestoring:
		return "restoring"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Rutas de destino de la navegación post-login / logout.
const (
	LoginPath         = "/login"
	AdminHomePath     = "/admin/dashboard"
	CaretakerHomePath = "/caretaker/dashboard"
	DonorHomePath     = "/donor/dashboard"
	PatientHomePath   = "/patient/dashboard"
)

// HomeFor devuelve el inicio de cada rol. Cualquier rol desconocido o vacío
// cae en el inicio de paciente.
func HomeFor(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return AdminHomePath
	case entity.RoleCaretaker:
		return CaretakerHomePath
	case entity.RoleDonor:
		return DonorHomePath
	default:
		return PatientHomePath
	}
}

// Record disposición durable de la sesión: claves token, user y userRole.
// User es el registro de identidad codificado en JSON.
type Record struct {
	Token string
	User  string
	Role  string
}

// Empty indica que no hay ninguna clave persistida.
func (r Record) Empty() bool {
	return r.Token == "" && r.User == "" && r.Role == ""
}

// Restore valida un Record leído de lo durable. Sin token o sin identidad, o
// con una identidad que no es un objeto JSON, devuelve domain.ErrMalformedSession.
func (r Record) Restore() (*entity.Identity, error) {
	if r.Token == "" || r.User == "" {
		return nil, fmt.Errorf("%w: faltan token o usuario", domain.ErrMalformedSession)
	}
	ident, err := entity.ParseIdentity([]byte(r.User))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedSession, err)
	}
	return ident, nil
}

// state valor inmutable publicado por el Store; se reemplaza completo en cada transición.
type state struct {
	status Status
	token  string
	user   *entity.Identity
}

var anonymous = &state{status: StatusAnonymous}

// Snapshot copia de la sesión para consumidores. Los flags derivados se
// recalculan en cada llamada.
type Snapshot struct {
	Status Status
	Token  string
	User   *entity.Identity
}

// Loading es true mientras el arranque no ha terminado.
func (s Snapshot) Loading() bool {
	return s.Status == StatusUninitialized || s.Status == StatusRestoring
}

// IsAuthenticated indica si hay token.
func (s Snapshot) IsAuthenticated() bool { return s.Token != "" }

// Role rol de la identidad, vacío si no hay sesión.
func (s Snapshot) Role() entity.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Snapshot) IsPatient() bool   { return s.Role() == entity.RolePatient }
func (s Snapshot) IsCaretaker() bool { return s.Role() == entity.RoleCaretaker }
func (s Snapshot) IsDonor() bool     { return s.Role() == entity.RoleDonor }
func (s Snapshot) IsAdmin() bool     { return s.Role() == entity.RoleAdmin }

// Result resultado de login/register/logout. Navigate es la intención de
// navegación para el llamador; vacío cuando la operación falla.
type Result struct {
	Success  bool
	Message  string
	Navigate string
}
