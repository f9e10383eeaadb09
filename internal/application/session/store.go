package session

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

const (
	loginFallback    = "Login failed"
	registerFallback = "Registration failed"
)

// Store fuente única de "quién está logueado" para una pestaña.
//
// Las transiciones (arranque, login, logout) se serializan con mu, que también
// cubre la escritura durable; el estado publicado se reemplaza completo con un
// atomic.Pointer, así un lector nunca ve token sin identidad ni al revés.
// Las llamadas de red se hacen fuera del lock.
type Store struct {
	api      ports.AuthAPI
	persist  Persistence
	marker   Marker
	notifier Notifier
	metrics  Recorder
	log      zerolog.Logger

	mu  sync.Mutex
	seq uint64 // ticket del último login/logout; sólo se toca con mu

	// tombstone: un borrado durable previo del dispositivo falló, Start no restaura.
	tombstone bool
	// onDurable recibe true cuando lo durable quedó con datos que debían borrarse.
	onDurable func(stale bool)

	current atomic.Pointer[state]
}

// Option configura un Store.
type Option func(*Store)

// WithLogger define el logger del store.
func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// WithNotifier define el receptor de notificaciones transitorias.
func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

// WithRecorder define el receptor de métricas.
func WithRecorder(r Recorder) Option { return func(s *Store) { s.metrics = r } }

// NewStore construye un store en estado Uninitialized; hay que llamar Start
// antes de servir rutas restringidas.
func NewStore(api ports.AuthAPI, persist Persistence, marker Marker, opts ...Option) *Store {
	s := &Store{
		api:     api,
		persist: persist,
		marker:  marker,
		metrics: nopRecorder{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Log: s.log}
	}
	s.current.Store(&state{status: StatusUninitialized})
	return s
}

// Snapshot devuelve el estado actual. No bloquea: durante el arranque
// devuelve Restoring (Loading() == true).
func (s *Store) Snapshot() Snapshot {
	st := s.current.Load()
	return Snapshot{Status: st.status, Token: st.token, User: st.user.Clone()}
}

// Start ejecuta la política de arranque una sola vez por store.
//
// Sin marcador (primera carga del proceso): borra todo lo durable, pone el
// marcador y queda Anonymous. Con marcador: restaura token + identidad si ambos
// existen y la identidad es un objeto JSON válido; si no, Anonymous. Un store
// con tombstone reintenta el borrado y nunca restaura.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Load().status != StatusUninitialized {
		return
	}
	s.current.Store(&state{status: StatusRestoring})

	if !s.marker.Seen() {
		if err := s.clearDurable(ctx); err != nil {
			s.log.Warn().Err(err).Msg("primera carga: no se pudo borrar la sesión durable")
		}
		s.marker.MarkSeen()
		s.current.Store(anonymous)
		s.metrics.RecordRestore("fresh")
		s.log.Debug().Msg("primera carga: sesión durable borrada")
		return
	}

	if s.tombstone {
		if err := s.clearDurable(ctx); err != nil {
			s.log.Warn().Err(err).Msg("borrado pendiente: la sesión durable sigue sin borrarse")
		}
		s.current.Store(anonymous)
		s.metrics.RecordRestore("tombstone")
		return
	}

	rec, err := s.persist.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la sesión durable")
		s.current.Store(anonymous)
		s.metrics.RecordRestore("error")
		return
	}
	if rec.Empty() {
		s.current.Store(anonymous)
		s.metrics.RecordRestore("empty")
		return
	}
	ident, err := rec.Restore()
	if err != nil {
		outcome := "malformed"
		if rec.Token == "" || rec.User == "" {
			outcome = "partial"
		}
		s.log.Warn().Err(err).Str("outcome", outcome).Msg("sesión durable descartada")
		s.current.Store(anonymous)
		s.metrics.RecordRestore(outcome)
		return
	}

	s.current.Store(&state{status: StatusAuthenticated, token: rec.Token, user: ident})
	s.metrics.RecordRestore("restored")
	s.log.Info().
		Str("email", ident.Email).
		Str("role", string(ident.Role)).
		Msg("sesión restaurada")
}

// Login autentica contra la API. Nunca devuelve error: las fallas se
// convierten en Result{Success: false, Message}.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.mu.Unlock()

	resp, err := s.api.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.loginFailed("rejected", err)
	}
	if resp == nil || strings.TrimSpace(resp.Token) == "" || len(resp.User) == 0 {
		return s.loginFailed("malformed", domain.ErrIncompleteLogin)
	}
	ident, err := entity.ParseIdentity(resp.User)
	if err != nil {
		return s.loginFailed("malformed", domain.ErrIncompleteLogin)
	}
	encoded, err := ident.Encode()
	if err != nil {
		return s.loginFailed("malformed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.seq {
		// Un logout u otro login ocurrió mientras la llamada estaba en vuelo.
		s.metrics.RecordLogin("superseded")
		s.log.Info().Str("email", email).Msg("respuesta de login descartada: sesión cambiada")
		return Result{Success: false, Message: domain.ErrLoginSuperseded.Error()}
	}

	rec := Record{Token: resp.Token, User: string(encoded), Role: string(ident.Role)}
	if err := s.persist.Save(ctx, rec); err != nil {
		s.log.Error().Err(err).Msg("no se pudo persistir la sesión")
		s.metrics.RecordLogin("persist_error")
		s.notifier.Notify(LevelError, loginFallback)
		return Result{Success: false, Message: loginFallback}
	}
	s.reportDurable(false)
	s.current.Store(&state{status: StatusAuthenticated, token: resp.Token, user: ident})

	if !ident.Role.Known() {
		s.log.Warn().Str("role", string(ident.Role)).Msg("rol desconocido, se navega al inicio de paciente")
	}
	s.log.Info().Str("email", ident.Email).Str("role", string(ident.Role)).Msg("login correcto")
	s.metrics.RecordLogin("success")
	s.notifier.Notify(LevelSuccess, "Login successful!")
	return Result{Success: true, Navigate: HomeFor(ident.Role)}
}

func (s *Store) loginFailed(outcome string, err error) Result {
	msg := messageFrom(err, loginFallback)
	s.log.Warn().Err(err).Msg("login fallido")
	s.metrics.RecordLogin(outcome)
	s.notifier.Notify(LevelError, msg)
	return Result{Success: false, Message: msg}
}

// Register reenvía el formulario sin modificar. No autentica: en éxito la
// intención es ir al login.
func (s *Store) Register(ctx context.Context, form dto.RegisterRequest) Result {
	if err := s.api.Register(ctx, form); err != nil {
		msg := messageFrom(err, registerFallback)
		s.log.Warn().Err(err).Msg("registro fallido")
		s.notifier.Notify(LevelError, msg)
		return Result{Success: false, Message: msg}
	}
	s.notifier.Notify(LevelSuccess, "Registration successful! Please login.")
	return Result{Success: true, Navigate: LoginPath}
}

// Logout borra memoria y las tres claves durables. Idempotente; siempre
// navega al login.
func (s *Store) Logout(ctx context.Context) Result {
	s.mu.Lock()
	s.seq++
	if err := s.clearDurable(ctx); err != nil {
		s.log.Error().Err(err).Msg("no se pudo borrar la sesión durable")
	}
	s.current.Store(anonymous)
	s.mu.Unlock()

	s.metrics.RecordLogout()
	s.notifier.Notify(LevelInfo, "Logged out successfully")
	return Result{Success: true, Navigate: LoginPath}
}

// clearDurable borra lo durable e informa si quedó pendiente. Requiere mu.
func (s *Store) clearDurable(ctx context.Context) error {
	err := s.persist.Clear(ctx)
	s.reportDurable(err != nil)
	return err
}

func (s *Store) reportDurable(stale bool) {
	if s.onDurable != nil {
		s.onDurable(stale)
	}
}
