package medapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
)

var _ ports.AdminAPI = (*Client)(nil)

// getData hace GET y devuelve el campo data del envelope.
func getData[T any](ctx context.Context, c *Client, token, route, path string, query url.Values) (T, error) {
	var env dto.Envelope[T]
	err := c.do(ctx, call{method: http.MethodGet, route: route, path: path, token: token, query: query}, &env)
	return env.Data, err
}

// getPage hace GET de un listado paginado.
func getPage[T any](ctx context.Context, c *Client, token, route string, q dto.PageQuery) (*dto.Envelope[[]T], error) {
	var env dto.Envelope[[]T]
	if err := c.do(ctx, call{method: http.MethodGet, route: route, path: route, token: token, query: q.Values()}, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// ── Usuarios y analítica ──────────────────────────────────────────────────────

func (c *Client) ListUsers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.UserSummary], error) {
	return getPage[dto.UserSummary](ctx, c, token, "/admin/users", q)
}

func (c *Client) UpdateUserStatus(ctx context.Context, token, userID, status string) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/admin/users/:id/status",
		path:   "/admin/users/" + segment(userID) + "/status",
		token:  token,
		body:   dto.UserStatusRequest{Status: status},
	}, nil)
}

func (c *Client) GetAnalytics(ctx context.Context, token string) (*dto.SystemAnalytics, error) {
	data, err := getData[dto.SystemAnalytics](ctx, c, token, "/admin/analytics", "/admin/analytics", nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetDashboardAnalytics(ctx context.Context, token string) (dto.DashboardAnalytics, error) {
	data, err := getData[json.RawMessage](ctx, c, token, "/admin/analytics/dashboard", "/admin/analytics/dashboard", nil)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) GetActivity(ctx context.Context, token string) ([]dto.ActivityEntry, error) {
	return getData[[]dto.ActivityEntry](ctx, c, token, "/admin/activity", "/admin/activity", nil)
}

// ── Pacientes ─────────────────────────────────────────────────────────────────

func (c *Client) ListPatients(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Patient], error) {
	return getPage[dto.Patient](ctx, c, token, "/admin/patients", q)
}

func (c *Client) GetPatient(ctx context.Context, token, patientID string) (*dto.Patient, error) {
	data, err := getData[dto.Patient](ctx, c, token, "/admin/patients/:id", "/admin/patients/"+segment(patientID), nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) UpdatePatient(ctx context.Context, token, patientID string, in dto.PatientUpdateRequest) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/admin/patients/:id",
		path:   "/admin/patients/" + segment(patientID),
		token:  token,
		body:   in,
	}, nil)
}

func (c *Client) GetPatientMedications(ctx context.Context, token, patientID string) ([]dto.Medication, error) {
	return getData[[]dto.Medication](ctx, c, token,
		"/admin/patients/:id/medications", "/admin/patients/"+segment(patientID)+"/medications", nil)
}

func (c *Client) GetPatientAdherence(ctx context.Context, token, patientID string, days int) (*dto.Adherence, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	data, err := getData[dto.Adherence](ctx, c, token,
		"/admin/patients/:id/adherence", "/admin/patients/"+segment(patientID)+"/adherence", q)
	if err != nil {
		return nil, err
	}
	if data.Days == 0 {
		data.Days = days
	}
	return &data, nil
}

// ── Cuidadores y vínculos ─────────────────────────────────────────────────────

func (c *Client) ListCaretakers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Caretaker], error) {
	return getPage[dto.Caretaker](ctx, c, token, "/admin/caretakers", q)
}

func (c *Client) GetCaretaker(ctx context.Context, token, caretakerID string) (*dto.Caretaker, error) {
	data, err := getData[dto.Caretaker](ctx, c, token, "/admin/caretakers/:id", "/admin/caretakers/"+segment(caretakerID), nil)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) ListLinks(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Link], error) {
	return getPage[dto.Link](ctx, c, token, "/admin/links", q)
}

func (c *Client) CreateLink(ctx context.Context, token string, in dto.AssignRequest) error {
	return c.do(ctx, call{method: http.MethodPost, route: "/admin/links", path: "/admin/links", token: token, body: in}, nil)
}

func (c *Client) DeleteLink(ctx context.Context, token, linkID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		route:  "/admin/links/:id",
		path:   "/admin/links/" + segment(linkID),
		token:  token,
	}, nil)
}

// ── Donaciones ────────────────────────────────────────────────────────────────

func (c *Client) ListDonationRequests(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.DonationRequest], error) {
	return getPage[dto.DonationRequest](ctx, c, token, "/admin/donation-requests", q)
}

func (c *Client) CreateDonationRequest(ctx context.Context, token string, in dto.CreateDonationRequest) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		route:  "/admin/donation-requests",
		path:   "/admin/donation-requests",
		token:  token,
		body:   in,
	}, nil)
}

func (c *Client) ApproveDonationRequest(ctx context.Context, token, requestID, notes string) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/admin/donation-requests/:id/approve",
		path:   "/admin/donation-requests/" + segment(requestID) + "/approve",
		token:  token,
		body:   dto.ApproveRequest{Notes: notes},
	}, nil)
}

func (c *Client) RejectDonationRequest(ctx context.Context, token, requestID, reason string) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		route:  "/admin/donation-requests/:id/reject",
		path:   "/admin/donation-requests/" + segment(requestID) + "/reject",
		token:  token,
		body:   dto.RejectRequest{Reason: reason},
	}, nil)
}

func (c *Client) FindSuitableDonors(ctx context.Context, token, requestID string, limit int) ([]dto.Donor, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return getData[[]dto.Donor](ctx, c, token,
		"/admin/donation-requests/:id/find-donors", "/admin/donation-requests/"+segment(requestID)+"/find-donors", q)
}

// NotifyDonors devuelve el mensaje del servidor: data.message, luego message; vacío si no hay.
func (c *Client) NotifyDonors(ctx context.Context, token, requestID string) (string, error) {
	var out struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	err := c.do(ctx, call{
		method: http.MethodPost,
		route:  "/admin/donation-requests/:id/notify-donors",
		path:   "/admin/donation-requests/" + segment(requestID) + "/notify-donors",
		token:  token,
	}, &out)
	if err != nil {
		return "", err
	}
	var nested struct {
		Message string `json:"message"`
	}
	if len(out.Data) > 0 && json.Unmarshal(out.Data, &nested) == nil && strings.TrimSpace(nested.Message) != "" {
		return strings.TrimSpace(nested.Message), nil
	}
	return strings.TrimSpace(out.Message), nil
}

func (c *Client) ListDonations(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Donation], error) {
	return getPage[dto.Donation](ctx, c, token, "/admin/donations", q)
}
