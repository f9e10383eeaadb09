package session

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jhoicas/medicare-console/internal/application/ports"
)

// Registry mantiene un Store por pestaña (dispositivo + marcador de sesión del
// navegador). Los stores expulsados del LRU se reconstruyen desde lo durable
// en la siguiente petición, salvo en dispositivos cuyo último borrado durable
// falló: ahí el store nuevo nace con tombstone y no restaura.
type Registry struct {
	api     ports.AuthAPI
	factory PersistenceFactory
	opts    []Option

	mu    sync.Mutex
	cache *lru.Cache[string, *Store]
	stale map[string]struct{} // dispositivos con borrado durable pendiente
}

// NewRegistry construye el registro con capacidad size.
func NewRegistry(api ports.AuthAPI, factory PersistenceFactory, size int, opts ...Option) (*Registry, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, *Store](size)
	if err != nil {
		return nil, fmt.Errorf("session registry: %w", err)
	}
	return &Registry{api: api, factory: factory, opts: opts, cache: cache, stale: map[string]struct{}{}}, nil
}

// Open devuelve el store de la pestaña; si no existe lo crea con marker y
// ejecuta su arranque antes de devolverlo.
func (r *Registry) Open(ctx context.Context, deviceID, tabID string, marker Marker) *Store {
	key := deviceID + "/" + tabID

	r.mu.Lock()
	st, ok := r.cache.Get(key)
	if !ok {
		st = NewStore(r.api, r.factory.ForDevice(deviceID), marker, r.opts...)
		_, st.tombstone = r.stale[deviceID]
		st.onDurable = r.durableHook(deviceID)
		r.cache.Add(key, st)
	}
	r.mu.Unlock()

	st.Start(ctx)
	return st
}

// durableHook se invoca con el mu del Store tomado; nunca al revés.
func (r *Registry) durableHook(deviceID string) func(bool) {
	return func(stale bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if stale {
			r.stale[deviceID] = struct{}{}
		} else {
			delete(r.stale, deviceID)
		}
	}
}

// Len número de stores vivos.
func (r *Registry) Len() int {
	return r.cache.Len()
}
