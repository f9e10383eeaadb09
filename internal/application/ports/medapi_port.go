package ports

import (
	"context"

	"github.com/jhoicas/medicare-console/internal/application/dto"
)

// AuthAPI define el puerto de salida hacia los endpoints públicos de autenticación.
// Los errores de la API remota deben poder inspeccionarse con MessageCarrier.
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, form dto.RegisterRequest) error
}

// MessageCarrier lo implementan los errores que traen un mensaje legible del servidor.
type MessageCarrier interface {
	ServerMessage() string
}

// AdminAPI define el puerto de salida hacia los endpoints /admin de la API remota.
// Cada llamada recibe el token bearer de la sesión que la origina.
type AdminAPI interface {
	// Usuarios y analítica
	ListUsers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.UserSummary], error)
	UpdateUserStatus(ctx context.Context, token, userID, status string) error
	GetAnalytics(ctx context.Context, token string) (*dto.SystemAnalytics, error)
	GetDashboardAnalytics(ctx context.Context, token string) (dto.DashboardAnalytics, error)
	GetActivity(ctx context.Context, token string) ([]dto.ActivityEntry, error)

	// Pacientes
	ListPatients(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Patient], error)
	GetPatient(ctx context.Context, token, patientID string) (*dto.Patient, error)
	UpdatePatient(ctx context.Context, token, patientID string, in dto.PatientUpdateRequest) error
	GetPatientMedications(ctx context.Context, token, patientID string) ([]dto.Medication, error)
	GetPatientAdherence(ctx context.Context, token, patientID string, days int) (*dto.Adherence, error)

	// Cuidadores y vínculos
	ListCaretakers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Caretaker], error)
	GetCaretaker(ctx context.Context, token, caretakerID string) (*dto.Caretaker, error)
	ListLinks(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Link], error)
	CreateLink(ctx context.Context, token string, in dto.AssignRequest) error
	DeleteLink(ctx context.Context, token, linkID string) error

	// Donaciones
	ListDonationRequests(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.DonationRequest], error)
	CreateDonationRequest(ctx context.Context, token string, in dto.CreateDonationRequest) error
	ApproveDonationRequest(ctx context.Context, token, requestID, notes string) error
	RejectDonationRequest(ctx context.Context, token, requestID, reason string) error
	FindSuitableDonors(ctx context.Context, token, requestID string, limit int) ([]dto.Donor, error)
	NotifyDonors(ctx context.Context, token, requestID string) (string, error)
	ListDonations(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Donation], error)
}
