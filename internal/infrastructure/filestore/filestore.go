// Package filestore guarda la sesión durable de cada dispositivo en un archivo
// JSON propio. Cada escritura reemplaza el archivo por rename atómico, así un
// lector nunca ve un token sin su identidad.
package filestore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/jhoicas/medicare-console/internal/application/session"
)

var (
	_ session.PersistenceFactory = (*Backend)(nil)
	_ session.Persistence        = (*Device)(nil)
)

// document forma en disco; mismas claves que el resto de backends.
type document struct {
	Token    string `json:"token,omitempty"`
	User     string `json:"user,omitempty"`
	UserRole string `json:"userRole,omitempty"`
}

// Backend directorio raíz de las sesiones.
type Backend struct {
	dir string
}

// New crea dir si no existe.
func New(dir string) (*Backend, error) {
	if dir == "" {
		return nil, errors.New("filestore: directorio vacío")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w", dir, err)
	}
	return &Backend{dir: dir}, nil
}

// ForDevice devuelve el almacenamiento de un dispositivo. El nombre de archivo
// es un hash del id, nunca el id crudo.
func (b *Backend) ForDevice(deviceID string) session.Persistence {
	sum := sha256.Sum256([]byte(deviceID))
	return &Device{path: filepath.Join(b.dir, hex.EncodeToString(sum[:16])+".json")}
}

// Device archivo de sesión de un dispositivo.
type Device struct {
	path string
}

// Path ruta del archivo (diagnóstico).
func (d *Device) Path() string { return d.path }

func (d *Device) Load(_ context.Context) (session.Record, error) {
	raw, err := os.ReadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return session.Record{}, nil
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("filestore: leer: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return session.Record{}, fmt.Errorf("filestore: decodificar: %w", err)
	}
	return session.Record{Token: doc.Token, User: doc.User, Role: doc.UserRole}, nil
}

func (d *Device) Save(_ context.Context, rec session.Record) error {
	raw, err := json.Marshal(document{Token: rec.Token, User: rec.User, UserRole: rec.Role})
	if err != nil {
		return fmt.Errorf("filestore: codificar: %w", err)
	}
	if err := atomic.WriteFile(d.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("filestore: escribir: %w", err)
	}
	return nil
}

func (d *Device) Clear(_ context.Context) error {
	err := os.Remove(d.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: borrar: %w", err)
	}
	return nil
}
