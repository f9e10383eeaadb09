package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
)

const (
	donationsPageLimit = 50
	donorsLimit        = 10

	defaultBloodGroup = "O+"
	defaultUrgency    = "Medium"

	notifyFallback = "All matching donors have been notified!"
)

// DonationUseCase solicitudes de donación de sangre y donaciones.
type DonationUseCase struct {
	api ports.AdminAPI
	log zerolog.Logger
}

// NewDonationUseCase construye el caso de uso.
func NewDonationUseCase(api ports.AdminAPI, log zerolog.Logger) *DonationUseCase {
	return &DonationUseCase{api: api, log: log}
}

// Requests solicitudes (página 1, 50 por defecto). Si la API falla la lista
// queda vacía y la pantalla sigue usable.
func (uc *DonationUseCase) Requests(ctx context.Context, token string, q dto.PageQuery) dto.Page[dto.DonationRequest] {
	q.DefaultPage(donationsPageLimit)
	env, err := uc.api.ListDonationRequests(ctx, token, q)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron cargar las solicitudes de donación")
		return dto.Page[dto.DonationRequest]{Items: []dto.DonationRequest{}, Page: q.Page, TotalPages: 1}
	}
	return dto.NewPage(env, q.Page)
}

// Donations donaciones registradas, con la misma política que Requests.
func (uc *DonationUseCase) Donations(ctx context.Context, token string, q dto.PageQuery) dto.Page[dto.Donation] {
	q.Urgent = nil
	q.DefaultPage(donationsPageLimit)
	env, err := uc.api.ListDonations(ctx, token, q)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron cargar las donaciones")
		return dto.Page[dto.Donation]{Items: []dto.Donation{}, Page: q.Page, TotalPages: 1}
	}
	return dto.NewPage(env, q.Page)
}

// Create valida y crea una solicitud. Hospital, ubicación y teléfono son
// obligatorios; grupo sanguíneo, unidades y urgencia tienen valores por defecto.
func (uc *DonationUseCase) Create(ctx context.Context, token string, in dto.CreateDonationRequest) (dto.CreateDonationRequest, error) {
	in.HospitalName = strings.TrimSpace(in.HospitalName)
	in.Location = strings.TrimSpace(in.Location)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	if in.HospitalName == "" || in.Location == "" || in.ContactNumber == "" {
		return in, domain.ErrMissingDonationFld
	}
	if strings.TrimSpace(in.BloodGroup) == "" {
		in.BloodGroup = defaultBloodGroup
	}
	if in.UnitsNeeded <= 0 {
		in.UnitsNeeded = 1
	}
	if strings.TrimSpace(in.UrgencyLevel) == "" {
		in.UrgencyLevel = defaultUrgency
	}
	if err := uc.api.CreateDonationRequest(ctx, token, in); err != nil {
		return in, fmt.Errorf("crear solicitud de donación: %w", err)
	}
	uc.log.Info().Str("hospital", in.HospitalName).Str("blood_group", in.BloodGroup).Msg("solicitud de donación creada")
	return in, nil
}

// Approve aprueba una solicitud con notas opcionales.
func (uc *DonationUseCase) Approve(ctx context.Context, token, requestID, notes string) error {
	if strings.TrimSpace(requestID) == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.api.ApproveDonationRequest(ctx, token, requestID, strings.TrimSpace(notes)); err != nil {
		return fmt.Errorf("aprobar solicitud: %w", err)
	}
	return nil
}

// Reject rechaza una solicitud con un motivo.
func (uc *DonationUseCase) Reject(ctx context.Context, token, requestID, reason string) error {
	if strings.TrimSpace(requestID) == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.api.RejectDonationRequest(ctx, token, requestID, strings.TrimSpace(reason)); err != nil {
		return fmt.Errorf("rechazar solicitud: %w", err)
	}
	return nil
}

// FindDonors donantes compatibles (10 por defecto).
func (uc *DonationUseCase) FindDonors(ctx context.Context, token, requestID string, limit int) ([]dto.Donor, error) {
	if strings.TrimSpace(requestID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = donorsLimit
	}
	donors, err := uc.api.FindSuitableDonors(ctx, token, requestID, limit)
	if err != nil {
		return nil, fmt.Errorf("buscar donantes: %w", err)
	}
	if donors == nil {
		donors = []dto.Donor{}
	}
	return donors, nil
}

// Notify avisa a los donantes compatibles y devuelve el mensaje a mostrar.
func (uc *DonationUseCase) Notify(ctx context.Context, token, requestID string) (string, error) {
	if strings.TrimSpace(requestID) == "" {
		return "", domain.ErrInvalidInput
	}
	msg, err := uc.api.NotifyDonors(ctx, token, requestID)
	if err != nil {
		return "", fmt.Errorf("notificar donantes: %w", err)
	}
	if strings.TrimSpace(msg) == "" {
		msg = notifyFallback
	}
	return msg, nil
}
