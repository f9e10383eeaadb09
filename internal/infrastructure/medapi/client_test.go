package medapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
	"github.com/jhoicas/medicare-console/internal/infrastructure/medapi"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type observed struct {
	method, route string
	status        int
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (r *recordingObserver) ObserveAPICall(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, observed{method, route, status})
}

func newClient(t *testing.T, h http.HandlerFunc, opts ...medapi.Option) *medapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return medapi.New(srv.URL+"/api", 2*time.Second, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EnviaCredencialesYConservaUsuarioCrudo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var in dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, dto.LoginRequest{Email: "a@b.com", Password: "x"}, in)
		_, _ = io.WriteString(w, `{"token":"t1","user":{"id":7,"role":"caretaker","extra":true}}`)
	})

	resp, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Token)
	assert.JSONEq(t, `{"id":7,"role":"caretaker","extra":true}`, string(resp.User))
}

func TestLogin_MensajeDelServidor(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad creds"})
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	var mc ports.MessageCarrier
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "bad creds", mc.ServerMessage())
	assert.Equal(t, http.StatusUnauthorized, medapi.StatusOf(err))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_ReenviaFormulario(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var form map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, "donor", form["role"])
		assert.Equal(t, "O+", form["blood_group"])
		writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	})

	err := c.Register(context.Background(), dto.RegisterRequest{"role": "donor", "blood_group": "O+"})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestError_CuerposPosibles(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"Email exists"}`, "Email exists"},
		{"error string", `{"error":"Forbidden"}`, "Forbidden"},
		{"error anidado", `{"error":{"message":"nested"}}`, "nested"},
		{"sin json", `<html>oops</html>`, ""},
		{"vacío", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tc.body)
			})
			err := c.Register(context.Background(), dto.RegisterRequest{})
			var apiErr *medapi.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.want, apiErr.ServerMessage())
			assert.Equal(t, "Request failed with status code 400", apiErr.Error())
		})
	}
}

func TestTransporte_EsErrUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := medapi.New(url+"/api", time.Second, medapi.WithMaxRetries(0))
	_, err := c.Login(context.Background(), dto.LoginRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Zero(t, medapi.StatusOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_ReintentaAnte5xx(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"id": "1", "name": "Ana"}}})
	}, medapi.WithMaxRetries(3))

	env, err := c.ListPatients(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Ana", env.Data[0].Name)
}

func TestGet_NoReintentaAnte4xx(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Patient not found"})
	}, medapi.WithMaxRetries(3))

	_, err := c.GetPatient(context.Background(), "tok", "99")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMutacion_NoSeReintenta(t *testing.T) {
	var hits atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, medapi.WithMaxRetries(3))

	err := c.DeleteLink(context.Background(), "tok", "5")
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin
// ──────────────────────────────────────────────────────────────────────────────

func TestListUsers_QueryTokenYPaginacion(t *testing.T) {
	obs := &recordingObserver{}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "donor", r.URL.Query().Get("role"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data":       []map[string]any{{"id": 3, "name": "D", "role": "donor", "status": "active"}},
			"pagination": map[string]int{"page": 1, "limit": 10, "total": 1, "totalPages": 1},
		})
	}, medapi.WithObserver(obs))

	env, err := c.ListUsers(context.Background(), "tok", dto.PageQuery{Page: 1, Limit: 10, Role: "donor"})
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "3", string(env.Data[0].ID))
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalPages)
	assert.Equal(t, []observed{{http.MethodGet, "/admin/users", http.StatusOK}}, obs.calls)
}

func TestRutasDeMutacion(t *testing.T) {
	type seen struct {
		method, path string
		body         map[string]any
	}
	var got seen
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = seen{method: r.Method, path: r.URL.Path}
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	ctx := context.Background()

	require.NoError(t, c.UpdateUserStatus(ctx, "tok", "u1", "inactive"))
	assert.Equal(t, seen{http.MethodPatch, "/api/admin/users/u1/status", map[string]any{"status": "inactive"}}, got)

	require.NoError(t, c.CreateLink(ctx, "tok", dto.AssignRequest{CaretakerID: "c1", PatientID: "p1"}))
	assert.Equal(t, seen{http.MethodPost, "/api/admin/links", map[string]any{"caretaker_id": "c1", "patient_id": "p1"}}, got)

	require.NoError(t, c.DeleteLink(ctx, "tok", "l1"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/api/admin/links/l1", got.path)

	require.NoError(t, c.ApproveDonationRequest(ctx, "tok", "r1", "ok"))
	assert.Equal(t, seen{http.MethodPatch, "/api/admin/donation-requests/r1/approve", map[string]any{"notes": "ok"}}, got)

	require.NoError(t, c.RejectDonationRequest(ctx, "tok", "r1", "no stock"))
	assert.Equal(t, seen{http.MethodPatch, "/api/admin/donation-requests/r1/reject", map[string]any{"reason": "no stock"}}, got)

	require.NoError(t, c.UpdatePatient(ctx, "tok", "p/1", dto.PatientUpdateRequest{Name: "N", City: "Cali"}))
	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/api/admin/patients/p/1", got.path, "el id viaja escapado y el servidor lo decodifica")
	assert.Equal(t, "Cali", got.body["city"])
}

func TestAdherencia_DecimalYDias(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/patients/p1/adherence", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("days"))
		_, _ = io.WriteString(w, `{"data":{"adherence_rate":87.5,"taken_doses":35,"missed_doses":5,"total_doses":40}}`)
	})

	got, err := c.GetPatientAdherence(context.Background(), "tok", "p1", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Days)
	assert.True(t, decimal.RequireFromString("87.5").Equal(got.AdherenceRate))
	assert.Equal(t, 40, got.TotalDoses)
}

func TestNotifyDonors_Mensaje(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"data.message": {`{"data":{"message":"5 donors notified"},"message":"ignored"}`, "5 donors notified"},
		"message":      {`{"message":"3 donors notified"}`, "3 donors notified"},
		"sin mensaje":  {`{"data":{"count":2}}`, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/admin/donation-requests/r1/notify-donors", r.URL.Path)
				_, _ = io.WriteString(w, tc.body)
			})
			msg, err := c.NotifyDonors(context.Background(), "tok", "r1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestDashboardAnalytics_SeReenviaCrudo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"trend":[1,2,3],"top":{"city":"Cali"}}}`)
	})
	got, err := c.GetDashboardAnalytics(context.Background(), "tok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"trend":[1,2,3],"top":{"city":"Cali"}}`, string(got))
}

func TestRespuestaIlegible(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": [`)
	}, medapi.WithMaxRetries(0))
	_, err := c.GetActivity(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
