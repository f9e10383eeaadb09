package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Role categoría de acceso de un usuario de la plataforma.
type Role string

// Roles válidos para Identity.
const (
	RolePatient   Role = "patient"
	RoleCaretaker Role = "caretaker"
	RoleDonor     Role = "donor"
	RoleAdmin     Role = "admin"
)

// Known indica si el rol pertenece al enum conocido por la consola.
func (r Role) Known() bool {
	switch r {
	case RolePatient, RoleCaretaker, RoleDonor, RoleAdmin:
		return true
	}
	return false
}

// ID identificador de un recurso tal como lo devuelve la API (string o número).
type ID string

// UnmarshalJSON acepta tanto "abc" como 42.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Identity perfil del usuario autenticado (id, name, email, role).
// Raw conserva el registro completo recibido de la API para persistirlo tal cual.
type Identity struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	Raw json.RawMessage `json:"-"`
}

// ParseIdentity decodifica un registro de usuario. Debe ser un objeto JSON;
// null, arrays o escalares se rechazan. Los campos se toman tal cual llegan:
// name, email y role sólo si son strings, id si es string o número; cualquier
// otro tipo queda vacío sin invalidar el registro.
func ParseIdentity(data []byte) (*Identity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("identity: se esperaba un objeto JSON")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	ident := &Identity{
		Name:  stringField(fields["name"]),
		Email: stringField(fields["email"]),
		Role:  Role(stringField(fields["role"])),
		Raw:   append(json.RawMessage(nil), trimmed...),
	}
	if raw, ok := fields["id"]; ok {
		var id ID
		if err := id.UnmarshalJSON(raw); err == nil {
			ident.ID = id
		}
	}
	return ident, nil
}

func stringField(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// Encode devuelve la forma persistible del registro: el JSON original si existe.
func (i *Identity) Encode() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	return json.Marshal(i)
}

// MarshalJSON expone el registro completo (campos extra incluidos) a los consumidores.
func (i Identity) MarshalJSON() ([]byte, error) {
	if len(i.Raw) > 0 {
		return i.Raw, nil
	}
	type plain Identity
	return json.Marshal(plain(i))
}

// Clone copia profunda; el estado del store nunca comparte el slice Raw.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Raw = append(json.RawMessage(nil), i.Raw...)
	return &c
}
