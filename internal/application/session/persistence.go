package session

import (
	"context"
	"sync/atomic"
)

// Persistence puerto del almacenamiento durable de una sesión.
// Save escribe las tres claves juntas y Clear las borra juntas; ninguna
// implementación debe dejar visible un estado con sólo una parte escrita.
// Load devuelve un Record vacío (sin error) cuando no hay nada guardado.
type Persistence interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// PersistenceFactory entrega el almacenamiento durable de un dispositivo (navegador).
type PersistenceFactory interface {
	ForDevice(deviceID string) Persistence
}

// Marker marcador de vida de proceso: sobrevive sólo mientras dura la
// ejecución actual (pestaña o proceso), nunca entre reinicios.
type Marker interface {
	Seen() bool
	MarkSeen()
}

// ProcessMarker marcador atado a la vida del proceso Go actual.
type ProcessMarker struct {
	seen atomic.Bool
}

func (m *ProcessMarker) Seen() bool { return m.seen.Load() }
func (m *ProcessMarker) MarkSeen()  { m.seen.Store(true) }

// StaticMarker marcador de valor fijo decidido por el llamador (p. ej. a partir
// de una cookie de sesión); MarkSeen invoca OnMark si está definido.
type StaticMarker struct {
	Present bool
	OnMark  func()
}

func (m *StaticMarker) Seen() bool { return m.Present }

func (m *StaticMarker) MarkSeen() {
	m.Present = true
	if m.OnMark != nil {
		m.OnMark()
	}
}
