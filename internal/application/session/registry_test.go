package session_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/internal/infrastructure/memstore"
)

func TestRegistry_ReutilizaStorePorPestana(t *testing.T) {
	backend := memstore.New()
	reg, err := session.NewRegistry(&fakeAuthAPI{loginFn: loginOK("t1", caretakerUser)}, backend, 8)
	require.NoError(t, err)

	first := reg.Open(context.Background(), "dev", "tab-1", &session.StaticMarker{})
	require.True(t, first.Login(context.Background(), "a@b.com", "x").Success)

	again := reg.Open(context.Background(), "dev", "tab-1", &session.StaticMarker{})
	assert.Same(t, first, again)
	assert.True(t, again.Snapshot().IsAuthenticated(), "la misma pestaña no vuelve a arrancar")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_NuevaPestanaConMarcadorRestaura(t *testing.T) {
	backend := memstore.New()
	reg, err := session.NewRegistry(&fakeAuthAPI{loginFn: loginOK("t1", caretakerUser)}, backend, 8)
	require.NoError(t, err)

	st := reg.Open(context.Background(), "dev", "tab-1", &session.StaticMarker{})
	require.True(t, st.Login(context.Background(), "a@b.com", "x").Success)

	// Otra pestaña del mismo navegador que ya conoce el marcador restaura.
	other := reg.Open(context.Background(), "dev", "tab-2", &session.StaticMarker{Present: true})
	assert.NotSame(t, st, other)
	assert.True(t, other.Snapshot().IsCaretaker())

	// Un proceso nuevo (sin marcador) borra la sesión del dispositivo.
	marked := false
	fresh := reg.Open(context.Background(), "dev", "tab-3", &session.StaticMarker{OnMark: func() { marked = true }})
	assert.False(t, fresh.Snapshot().IsAuthenticated())
	assert.True(t, marked)
	assert.Empty(t, backend.Keys("dev"))
}

func TestRegistry_ExpulsionRestauraDesdeLoDurable(t *testing.T) {
	backend := memstore.New()
	reg, err := session.NewRegistry(&fakeAuthAPI{loginFn: loginOK("t1", caretakerUser)}, backend, 1)
	require.NoError(t, err)

	st := reg.Open(context.Background(), "dev", "tab-1", &session.StaticMarker{})
	require.True(t, st.Login(context.Background(), "a@b.com", "x").Success)

	reg.Open(context.Background(), "other", "tab-9", &session.StaticMarker{})
	assert.Equal(t, 1, reg.Len())

	back := reg.Open(context.Background(), "dev", "tab-1", &session.StaticMarker{Present: true})
	assert.NotSame(t, st, back)
	assert.Equal(t, "t1", back.Snapshot().Token)
}

func TestRegistry_TamanoPorDefecto(t *testing.T) {
	reg, err := session.NewRegistry(&fakeAuthAPI{}, memstore.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

// clearFailFactory memstore cuyo Clear falla mientras fail esté activo.
type clearFailFactory struct {
	backend *memstore.Backend
	fail    atomic.Bool
}

func (f *clearFailFactory) ForDevice(deviceID string) session.Persistence {
	return &clearFailPersistence{Persistence: f.backend.ForDevice(deviceID), fail: &f.fail}
}

type clearFailPersistence struct {
	session.Persistence
	fail *atomic.Bool
}

func (p *clearFailPersistence) Clear(ctx context.Context) error {
	if p.fail.Load() {
		return errors.New("db down")
	}
	return p.Persistence.Clear(ctx)
}

func TestRegistry_LogoutConBorradoFallidoNoRestauraTrasExpulsion(t *testing.T) {
	ctx := context.Background()
	factory := &clearFailFactory{backend: memstore.New()}
	reg, err := session.NewRegistry(&fakeAuthAPI{loginFn: loginOK("t1", caretakerUser)}, factory, 1)
	require.NoError(t, err)

	st := reg.Open(ctx, "dev", "tab-1", &session.StaticMarker{})
	require.True(t, st.Login(ctx, "a@b.com", "x").Success)

	factory.fail.Store(true)
	st.Logout(ctx)
	require.NotEmpty(t, factory.backend.Keys("dev"), "el borrado falló y las claves siguen ahí")

	reg.Open(ctx, "other", "tab-9", &session.StaticMarker{Present: true})

	back := reg.Open(ctx, "dev", "tab-1", &session.StaticMarker{Present: true})
	assert.NotSame(t, st, back)
	assertAnonymous(t, back.Snapshot())

	// Con el backend sano el siguiente store reintenta el borrado.
	factory.fail.Store(false)
	reg.Open(ctx, "other", "tab-9", &session.StaticMarker{Present: true})
	retry := reg.Open(ctx, "dev", "tab-2", &session.StaticMarker{Present: true})
	assertAnonymous(t, retry.Snapshot())
	assert.Empty(t, factory.backend.Keys("dev"))

	// Un login correcto levanta la marca: la expulsión vuelve a restaurar.
	require.True(t, retry.Login(ctx, "a@b.com", "x").Success)
	reg.Open(ctx, "other", "tab-9", &session.StaticMarker{Present: true})
	again := reg.Open(ctx, "dev", "tab-2", &session.StaticMarker{Present: true})
	assert.Equal(t, "t1", again.Snapshot().Token)
}

func TestRegistry_PrimeraCargaConBorradoFallidoNoRestaura(t *testing.T) {
	ctx := context.Background()
	factory := &clearFailFactory{backend: memstore.New()}
	factory.backend.Put("dev", memstore.KeyToken, "stale")
	factory.backend.Put("dev", memstore.KeyUser, caretakerUser)
	factory.fail.Store(true)
	reg, err := session.NewRegistry(&fakeAuthAPI{}, factory, 1)
	require.NoError(t, err)

	fresh := reg.Open(ctx, "dev", "tab-1", &session.StaticMarker{})
	assertAnonymous(t, fresh.Snapshot())

	reg.Open(ctx, "other", "tab-9", &session.StaticMarker{Present: true})
	back := reg.Open(ctx, "dev", "tab-1", &session.StaticMarker{Present: true})
	assertAnonymous(t, back.Snapshot())
}
