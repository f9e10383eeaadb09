package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicare-console/internal/application/session"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
	"github.com/jhoicas/medicare-console/internal/infrastructure/medapi"
	"github.com/jhoicas/medicare-console/internal/infrastructure/memstore"
	"github.com/jhoicas/medicare-console/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/medicare-console/internal/interfaces/http"
	"github.com/jhoicas/medicare-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// API remota falsa
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "secret"

// fakeRemote emula la API de MediCare. Las rutas /admin exigen el token de admin.
type fakeRemote struct {
	*httptest.Server
	patientStatus atomic.Int32 // status forzado para /admin/patients (0 = normal)
	lastBody      atomic.Value // último cuerpo recibido en una mutación
}

func userJSON(role string) string {
	return `{"id":"u-` + role + `","name":"Test ` + role + `","email":"` + role + `@medicare.test","role":"` + role + `","phone":"555"}`
}

func newFakeRemote(t *testing.T) *fakeRemote {
	t.Helper()
	fr := &fakeRemote{}
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-admin" {
				write(w, http.StatusUnauthorized, `{"message":"Invalid token"}`)
				return
			}
			if r.Body != nil {
				b, _ := io.ReadAll(r.Body)
				fr.lastBody.Store(string(b))
			}
			h(w, r)
		}
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		role, _, _ := strings.Cut(in.Email, "@")
		if in.Password != testPassword {
			write(w, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
			return
		}
		write(w, http.StatusOK, `{"token":"tok-`+role+`","user":`+userJSON(role)+`}`)
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["email"] == "taken@medicare.test" {
			write(w, http.StatusBadRequest, `{"message":"Email already registered"}`)
			return
		}
		write(w, http.StatusCreated, `{"message":"ok"}`)
	})

	mux.HandleFunc("GET /api/admin/analytics", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, `{"data":{"users":{"total":3,"byRole":{"admin":1,"patient":2}},"medications":5,"doses":40,"caretakerPatientLinks":1}}`)
	}))
	mux.HandleFunc("GET /api/admin/activity", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, `{"data":[{"type":"dose_logged","message":"Dose logged","timestamp":"2026-01-01T10:00:00Z"}]}`)
	}))
	mux.HandleFunc("GET /api/admin/users", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, `{"data":[{"id":1,"name":"Ana","email":"ana@x","role":"patient","status":"active"}],"pagination":{"page":1,"totalPages":1}}`)
	}))
	mux.HandleFunc("PATCH /api/admin/users/{id}/status", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, `{"message":"updated"}`)
	}))
	mux.HandleFunc("GET /api/admin/patients", admin(func(w http.ResponseWriter, _ *http.Request) {
		switch fr.patientStatus.Load() {
		case http.StatusNotFound:
			write(w, http.StatusNotFound, `{"message":"No patients here"}`)
		case http.StatusInternalServerError:
			write(w, http.StatusInternalServerError, `{}`)
		default:
			write(w, http.StatusOK, `{"data":[{"id":"p1","name":"Ana"}],"pagination":{"page":1,"totalPages":2}}`)
		}
	}))
	mux.HandleFunc("POST /api/admin/links", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusCreated, `{"message":"linked"}`)
	}))
	mux.HandleFunc("GET /api/admin/donation-requests", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusServiceUnavailable, `{"message":"down"}`)
	}))
	mux.HandleFunc("POST /api/admin/donation-requests", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusCreated, `{"message":"created"}`)
	}))
	mux.HandleFunc("POST /api/admin/donation-requests/{id}/notify-donors", admin(func(w http.ResponseWriter, _ *http.Request) {
		write(w, http.StatusOK, `{"success":true}`)
	}))

	fr.Server = httptest.NewServer(mux)
	t.Cleanup(fr.Close)
	return fr
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de prueba
// ──────────────────────────────────────────────────────────────────────────────

type gateCount struct{ n atomic.Int32 }

func (g *gateCount) RecordGate(string, string) { g.n.Add(1) }

type testEnv struct {
	app     *fiber.App
	remote  *fakeRemote
	durable *memstore.Backend
	signer  *jwt.Signer
	gates   *gateCount
}

func newTestEnv(t *testing.T, loginPerMin int) *testEnv {
	t.Helper()
	remote := newFakeRemote(t)
	client := medapi.New(remote.URL+"/api", 5*time.Second, medapi.WithMaxRetries(0))
	durable := memstore.New()
	reg, err := session.NewRegistry(client, durable, 64)
	require.NoError(t, err)
	signer, err := jwt.NewSigner([]byte("test-cookie-secret"))
	require.NoError(t, err)

	nop := zerolog.Nop()
	gates := &gateCount{}
	app := fiber.New()
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		Console: apphttp.ConsoleConfig{
			Registry:  reg,
			Signer:    signer,
			DeviceTTL: 24 * time.Hour,
			Log:       nop,
		},
		Gate:        gates,
		LoginPerMin: loginPerMin,
		DashboardUC: usecase.NewDashboardUseCase(client, nop),
		PatientUC:   usecase.NewPatientUseCase(client),
		CaretakerUC: usecase.NewCaretakerUseCase(client, nop),
		DonationUC:  usecase.NewDonationUseCase(client, nop),
		ReportUC:    usecase.NewReportUseCase(client, pdf.NewAnalyticsRenderer()),
	})
	return &testEnv{app: app, remote: remote, durable: durable, signer: signer, gates: gates}
}

// browser guarda las cookies entre peticiones como lo haría un navegador.
type browser struct {
	t   *testing.T
	env *testEnv
	jar map[string]*http.Cookie
}

func (e *testEnv) browser(t *testing.T) *browser {
	return &browser{t: t, env: e, jar: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path, body string) *http.Response {
	b.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range b.jar {
		req.AddCookie(ck)
	}
	resp, err := b.env.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, ck := range resp.Cookies() {
		b.jar[ck.Name] = ck
	}
	return resp
}

// closeTab simula cerrar el navegador: se pierde la cookie de sesión.
func (b *browser) closeTab() { delete(b.jar, apphttp.TabCookie) }

func (b *browser) deviceID() string {
	b.t.Helper()
	ck, ok := b.jar[apphttp.DeviceCookie]
	require.True(b.t, ok, "falta la cookie de dispositivo")
	id, err := b.env.signer.Parse(jwt.KindDevice, ck.Value)
	require.NoError(b.t, err)
	return id
}

func (b *browser) login(role string) {
	b.t.Helper()
	resp := b.do(http.MethodPost, "/auth/login", `{"email":"`+role+`@medicare.test","password":"`+testPassword+`"}`)
	defer resp.Body.Close()
	require.Equal(b.t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
