// Package navigation decide si una ruta se muestra, espera o redirige según la
// sesión actual.
package navigation

import (
	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// Action resultado de la compuerta.
type Action int

const (
	Render Action = iota
	Placeholder
	Redirect
)

func (a Action) String() string {
	switch a {
	case Render:
		return "render"
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

type kind int

const (
	kindPublic kind = iota
	kindAuthenticated
	kindRole
)

// Requirement requisito de acceso de una ruta.
type Requirement struct {
	kind kind
	role entity.Role
}

// Public ruta sin restricciones.
func Public() Requirement { return Requirement{kind: kindPublic} }

// Authenticated ruta para cualquier sesión.
func Authenticated() Requirement { return Requirement{kind: kindAuthenticated} }

// Role ruta exclusiva de un rol.
func Role(r entity.Role) Requirement { return Requirement{kind: kindRole, role: r} }

// String nombre corto para logs y métricas.
func (r Requirement) String() string {
	switch r.kind {
	case kindPublic:
		return "public"
	case kindAuthenticated:
		return "authenticated"
	}
	return "role:" + string(r.role)
}

// Decision qué hacer con la ruta. Location sólo aplica a Redirect.
type Decision struct {
	Action   Action
	Location string
}

// Decide es puro: la misma sesión y el mismo requisito dan siempre la misma decisión.
// Mientras la sesión carga nunca redirige.
func Decide(snap session.Snapshot, req Requirement) Decision {
	if snap.Loading() {
		return Decision{Action: Placeholder}
	}
	if req.kind == kindPublic {
		return Decision{Action: Render}
	}
	if !snap.IsAuthenticated() {
		return Decision{Action: Redirect, Location: session.LoginPath}
	}
	if req.kind == kindRole && snap.Role() != req.role {
		return Decision{Action: Redirect, Location: session.HomeFor(snap.Role())}
	}
	return Decision{Action: Render}
}
