// Package memstore implementa el almacenamiento durable de sesiones en memoria.
// Sobrevive a la vida de cada Store pero no a un reinicio del proceso; útil en
// desarrollo y en tests.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/medicare-console/internal/application/session"
)

// Claves durables, idénticas en todos los backends.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyUserRole = "userRole"
)

var (
	_ session.PersistenceFactory = (*Backend)(nil)
	_ session.Persistence        = (*Device)(nil)
)

// Backend guarda las claves de todos los dispositivos.
type Backend struct {
	mu      sync.RWMutex
	devices map[string]map[string]string
}

// New construye un backend vacío.
func New() *Backend {
	return &Backend{devices: make(map[string]map[string]string)}
}

// ForDevice devuelve la vista de un dispositivo.
func (b *Backend) ForDevice(deviceID string) session.Persistence {
	return &Device{backend: b, id: deviceID}
}

// Keys copia de las claves de un dispositivo (para inspección en tests).
func (b *Backend) Keys(deviceID string) map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.devices[deviceID]))
	for k, v := range b.devices[deviceID] {
		out[k] = v
	}
	return out
}

// Put escribe una clave suelta. Sólo para preparar estados (incluso parciales) en tests.
func (b *Backend) Put(deviceID, key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.devices[deviceID] == nil {
		b.devices[deviceID] = make(map[string]string)
	}
	b.devices[deviceID][key] = value
}

// Device almacenamiento de un dispositivo.
type Device struct {
	backend *Backend
	id      string
}

func (d *Device) Load(_ context.Context) (session.Record, error) {
	d.backend.mu.RLock()
	defer d.backend.mu.RUnlock()
	kv := d.backend.devices[d.id]
	return session.Record{Token: kv[KeyToken], User: kv[KeyUser], Role: kv[KeyUserRole]}, nil
}

func (d *Device) Save(_ context.Context, rec session.Record) error {
	d.backend.mu.Lock()
	defer d.backend.mu.Unlock()
	d.backend.devices[d.id] = map[string]string{
		KeyToken:    rec.Token,
		KeyUser:     rec.User,
		KeyUserRole: rec.Role,
	}
	return nil
}

func (d *Device) Clear(_ context.Context) error {
	d.backend.mu.Lock()
	defer d.backend.mu.Unlock()
	delete(d.backend.devices, d.id)
	return nil
}
