package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
)

const (
	patientsPageLimit = 10
	adherenceDays     = 30
)

var hundred = decimal.NewFromInt(100)

// PatientUseCase listado, detalle y edición de pacientes.
type PatientUseCase struct {
	api ports.AdminAPI
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(api ports.AdminAPI) *PatientUseCase {
	return &PatientUseCase{api: api}
}

// List página de pacientes (10 por página) con búsqueda opcional.
func (uc *PatientUseCase) List(ctx context.Context, token string, page int, search string) (dto.Page[dto.Patient], error) {
	q := dto.PageQuery{Page: page, Search: strings.TrimSpace(search)}
	q.DefaultPage(patientsPageLimit)
	env, err := uc.api.ListPatients(ctx, token, q)
	if err != nil {
		return dto.Page[dto.Patient]{}, fmt.Errorf("listar pacientes: %w", err)
	}
	return dto.NewPage(env, q.Page), nil
}

// Details perfil, medicamentos y adherencia de 30 días en paralelo. Si una
// de las tres llamadas falla, falla el detalle completo.
func (uc *PatientUseCase) Details(ctx context.Context, token, patientID string) (*dto.PatientDetails, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		patient   *dto.Patient
		meds      []dto.Medication
		adherence *dto.Adherence
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patient, err = uc.api.GetPatient(gctx, token, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		meds, err = uc.api.GetPatientMedications(gctx, token, patientID)
		return err
	})
	g.Go(func() error {
		var err error
		adherence, err = uc.api.GetPatientAdherence(gctx, token, patientID, adherenceDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("detalle de paciente: %w", err)
	}

	out := &dto.PatientDetails{Medications: meds, Adherence: normalizeAdherence(adherence)}
	if patient != nil {
		out.Patient = *patient
	}
	if out.Medications == nil {
		out.Medications = []dto.Medication{}
	}
	return out, nil
}

// normalizeAdherence completa la tasa (porcentaje, 1 decimal) cuando la API
// sólo manda los conteos.
func normalizeAdherence(a *dto.Adherence) *dto.Adherence {
	if a == nil {
		return nil
	}
	if a.TotalDoses == 0 && a.TakenDoses+a.MissedDoses > 0 {
		a.TotalDoses = a.TakenDoses + a.MissedDoses
	}
	if a.AdherenceRate.IsZero() && a.TotalDoses > 0 {
		a.AdherenceRate = decimal.NewFromInt(int64(a.TakenDoses)).
			Div(decimal.NewFromInt(int64(a.TotalDoses))).
			Mul(hundred).
			Round(1)
	}
	return a
}

// Update edita los datos básicos del paciente.
func (uc *PatientUseCase) Update(ctx context.Context, token, patientID string, in dto.PatientUpdateRequest) error {
	if strings.TrimSpace(patientID) == "" {
		return domain.ErrInvalidInput
	}
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Age != nil && *in.Age < 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.api.UpdatePatient(ctx, token, patientID, in); err != nil {
		return fmt.Errorf("actualizar paciente: %w", err)
	}
	return nil
}
