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
	caretakersPageLimit = 10
	assignableLimit     = 100 // pacientes ofrecidos en el selector de asignación
	linksPageLimit      = 20
)

// CaretakerUseCase cuidadores y sus vínculos con pacientes.
type CaretakerUseCase struct {
	api ports.AdminAPI
	log zerolog.Logger
}

// NewCaretakerUseCase construye el caso de uso.
func NewCaretakerUseCase(api ports.AdminAPI, log zerolog.Logger) *CaretakerUseCase {
	return &CaretakerUseCase{api: api, log: log}
}

// List página de cuidadores (10 por página) con búsqueda opcional.
func (uc *CaretakerUseCase) List(ctx context.Context, token string, page int, search string) (dto.Page[dto.Caretaker], error) {
	q := dto.PageQuery{Page: page, Search: strings.TrimSpace(search)}
	q.DefaultPage(caretakersPageLimit)
	env, err := uc.api.ListCaretakers(ctx, token, q)
	if err != nil {
		return dto.Page[dto.Caretaker]{}, fmt.Errorf("listar cuidadores: %w", err)
	}
	return dto.NewPage(env, q.Page), nil
}

// Details cuidador con sus pacientes asignados.
func (uc *CaretakerUseCase) Details(ctx context.Context, token, caretakerID string) (*dto.Caretaker, error) {
	if strings.TrimSpace(caretakerID) == "" {
		return nil, domain.ErrInvalidInput
	}
	ct, err := uc.api.GetCaretaker(ctx, token, caretakerID)
	if err != nil {
		return nil, fmt.Errorf("detalle de cuidador: %w", err)
	}
	return ct, nil
}

// AssignablePatients pacientes para el selector (hasta 100). Una falla deja
// la lista vacía: el selector no bloquea la pantalla.
func (uc *CaretakerUseCase) AssignablePatients(ctx context.Context, token string) []dto.Patient {
	env, err := uc.api.ListPatients(ctx, token, dto.PageQuery{Limit: assignableLimit})
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron cargar los pacientes asignables")
		return []dto.Patient{}
	}
	if env.Data == nil {
		return []dto.Patient{}
	}
	return env.Data
}

// Assign vincula un paciente al cuidador.
func (uc *CaretakerUseCase) Assign(ctx context.Context, token, caretakerID, patientID string) error {
	caretakerID = strings.TrimSpace(caretakerID)
	patientID = strings.TrimSpace(patientID)
	if caretakerID == "" || patientID == "" {
		return domain.ErrMissingPatient
	}
	if err := uc.api.CreateLink(ctx, token, dto.AssignRequest{CaretakerID: caretakerID, PatientID: patientID}); err != nil {
		return fmt.Errorf("asignar paciente: %w", err)
	}
	uc.log.Info().Str("caretaker_id", caretakerID).Str("patient_id", patientID).Msg("paciente asignado")
	return nil
}

// RemoveLink elimina un vínculo cuidador-paciente.
func (uc *CaretakerUseCase) RemoveLink(ctx context.Context, token, linkID string) error {
	if strings.TrimSpace(linkID) == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.api.DeleteLink(ctx, token, linkID); err != nil {
		return fmt.Errorf("eliminar vínculo: %w", err)
	}
	return nil
}

// Links página de vínculos.
func (uc *CaretakerUseCase) Links(ctx context.Context, token string, page, limit int) (dto.Page[dto.Link], error) {
	q := dto.PageQuery{Page: page, Limit: limit}
	q.DefaultPage(linksPageLimit)
	env, err := uc.api.ListLinks(ctx, token, q)
	if err != nil {
		return dto.Page[dto.Link]{}, fmt.Errorf("listar vínculos: %w", err)
	}
	return dto.NewPage(env, q.Page), nil
}
