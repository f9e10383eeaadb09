package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

// ── Usuarios y analítica ──────────────────────────────────────────────────────

// UserSummary fila de la tabla de gestión de usuarios.
type UserSummary struct {
	ID     entity.ID   `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	Status string      `json:"status"`
}

// UserStatusRequest cuerpo de PATCH /admin/users/:id/status.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// ToggleStatusRequest entrada del navegador: estado actual y rol de la fila.
type ToggleStatusRequest struct {
	CurrentStatus string      `json:"current_status"`
	Role          entity.Role `json:"role"`
}

// UserCounts totales de usuarios por rol.
type UserCounts struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"byRole"`
}

// SystemAnalytics tarjetas del dashboard.
type SystemAnalytics struct {
	Users                 UserCounts `json:"users"`
	Medications           int        `json:"medications"`
	Doses                 int        `json:"doses"`
	CaretakerPatientLinks int        `json:"caretakerPatientLinks"`
}

// DashboardView analítica + primera página de usuarios.
type DashboardView struct {
	Analytics SystemAnalytics `json:"analytics"`
	Users     []UserSummary   `json:"users"`
	Role      string          `json:"role"`
}

// ActivityEntry evento reciente del sistema.
type ActivityEntry struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	UserID    entity.ID `json:"user_id"`
	Timestamp string    `json:"timestamp"`
}

// ── Pacientes ─────────────────────────────────────────────────────────────────

// Patient perfil básico de un paciente.
type Patient struct {
	ID         entity.ID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Age        *int      `json:"age,omitempty"`
	Gender     string    `json:"gender"`
	BloodGroup string    `json:"blood_group"`
	City       string    `json:"city"`
	Status     string    `json:"status,omitempty"`
}

// PatientUpdateRequest campos editables desde el modal de edición.
type PatientUpdateRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Age        *int   `json:"age,omitempty"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"blood_group"`
	City       string `json:"city"`
}

// Medication medicamento asignado a un paciente.
type Medication struct {
	ID        entity.ID `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
}

// Adherence estadísticas de adherencia de los últimos N días.
type Adherence struct {
	Days          int             `json:"days"`
	AdherenceRate decimal.Decimal `json:"adherence_rate"`
	TakenDoses    int             `json:"taken_doses"`
	MissedDoses   int             `json:"missed_doses"`
	TotalDoses    int             `json:"total_doses"`
}

// PatientDetails vista del modal de detalle (tres llamadas en paralelo).
type PatientDetails struct {
	Patient     Patient      `json:"patient"`
	Medications []Medication `json:"medications"`
	Adherence   *Adherence   `json:"adherence"`
}

// ── Cuidadores y vínculos ─────────────────────────────────────────────────────

// Caretaker cuidador con su conteo (y, en detalle, lista) de pacientes.
type Caretaker struct {
	ID           entity.ID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PatientCount int       `json:"patient_count"`
	Patients     []Patient `json:"patients,omitempty"`
}

// Link vínculo cuidador-paciente.
type Link struct {
	ID            entity.ID `json:"id"`
	CaretakerID   entity.ID `json:"caretaker_id"`
	PatientID     entity.ID `json:"patient_id"`
	CaretakerName string    `json:"caretaker_name,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	CreatedAt     string    `json:"created_at,omitempty"`
}

// AssignRequest cuerpo de POST /admin/links.
type AssignRequest struct {
	CaretakerID string `json:"caretaker_id"`
	PatientID   string `json:"patient_id"`
}

// ── Donaciones ────────────────────────────────────────────────────────────────

// DonationRequest solicitud de donación de sangre.
type DonationRequest struct {
	ID            entity.ID `json:"id"`
	HospitalName  string    `json:"hospital_name"`
	Location      string    `json:"location"`
	BloodGroup    string    `json:"blood_group"`
	UnitsNeeded   int       `json:"units_needed"`
	UrgencyLevel  string    `json:"urgency_level"`
	ContactNumber string    `json:"contact_number"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     string    `json:"created_at,omitempty"`
}

// CreateDonationRequest formulario del modal de nueva solicitud.
type CreateDonationRequest struct {
	HospitalName  string `json:"hospital_name"`
	Location      string `json:"location"`
	BloodGroup    string `json:"blood_group"`
	UnitsNeeded   int    `json:"units_needed"`
	UrgencyLevel  string `json:"urgency_level"`
	ContactNumber string `json:"contact_number"`
	Notes         string `json:"notes"`
}

// ApproveRequest cuerpo de PATCH .../approve.
type ApproveRequest struct {
	Notes string `json:"notes"`
}

// RejectRequest cuerpo de PATCH .../reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Donation donación registrada.
type Donation struct {
	ID         entity.ID `json:"id"`
	RequestID  entity.ID `json:"request_id,omitempty"`
	DonorName  string    `json:"donor_name"`
	BloodGroup string    `json:"blood_group"`
	Units      int       `json:"units"`
	Status     string    `json:"status"`
	DonatedAt  string    `json:"donated_at,omitempty"`
}

// Donor donante compatible sugerido para una solicitud urgente.
type Donor struct {
	ID           entity.ID `json:"id"`
	Name         string    `json:"name"`
	BloodGroup   string    `json:"blood_group"`
	City         string    `json:"city"`
	Phone        string    `json:"phone"`
	LastDonation string    `json:"last_donation,omitempty"`
}

// DashboardAnalytics analítica extendida; su forma la define la API y se reenvía tal cual.
type DashboardAnalytics = json.RawMessage

// ── Reporte ───────────────────────────────────────────────────────────────────

// AnalyticsReport datos del PDF de analítica.
type AnalyticsReport struct {
	Title       string
	GeneratedBy string
	GeneratedAt time.Time
	Analytics   SystemAnalytics
	Activity    []ActivityEntry
}
