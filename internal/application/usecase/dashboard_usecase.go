// Package usecase contiene los casos de uso de las pantallas de administración.
// Todos reciben el token bearer de la sesión que los origina y delegan en AdminAPI.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
	"github.com/jhoicas/medicare-console/internal/domain"
	"github.com/jhoicas/medicare-console/internal/domain/entity"
)

const dashboardUsersLimit = 10 // filas de la tabla de usuarios del dashboard

// Estados de usuario que alterna el dashboard.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DashboardUseCase analítica del sistema y gestión de estado de usuarios.
type DashboardUseCase struct {
	api ports.AdminAPI
	log zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(api ports.AdminAPI, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{api: api, log: log}
}

// Load trae en paralelo la analítica y la primera página de usuarios.
// role "all" (o vacío) no filtra.
func (uc *DashboardUseCase) Load(ctx context.Context, token, role string) (*dto.DashboardView, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "all"
	}

	var (
		analytics *dto.SystemAnalytics
		users     *dto.Envelope[[]dto.UserSummary]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = uc.api.GetAnalytics(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = uc.api.ListUsers(gctx, token, dto.PageQuery{Page: 1, Limit: dashboardUsersLimit, Role: role})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	view := &dto.DashboardView{Role: role, Users: users.Data}
	if analytics != nil {
		view.Analytics = *analytics
	}
	if view.Users == nil {
		view.Users = []dto.UserSummary{}
	}
	return view, nil
}

// Users página de usuarios con filtros.
func (uc *DashboardUseCase) Users(ctx context.Context, token string, q dto.PageQuery) (dto.Page[dto.UserSummary], error) {
	q.DefaultPage(dashboardUsersLimit)
	env, err := uc.api.ListUsers(ctx, token, q)
	if err != nil {
		return dto.Page[dto.UserSummary]{}, fmt.Errorf("listar usuarios: %w", err)
	}
	return dto.NewPage(env, q.Page), nil
}

// ToggleUserStatus alterna active ↔ inactive y devuelve el nuevo estado.
// Los administradores no se pueden deshabilitar.
func (uc *DashboardUseCase) ToggleUserStatus(ctx context.Context, token, userID string, in dto.ToggleStatusRequest) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", domain.ErrInvalidInput
	}
	if in.Role == entity.RoleAdmin {
		return "", domain.ErrAdminStatusChange
	}
	next := StatusActive
	if in.CurrentStatus == StatusActive {
		next = StatusInactive
	}
	if err := uc.api.UpdateUserStatus(ctx, token, userID, next); err != nil {
		return "", fmt.Errorf("actualizar estado de usuario: %w", err)
	}
	uc.log.Info().Str("user_id", userID).Str("status", next).Msg("estado de usuario actualizado")
	return next, nil
}

// ToggleMessage texto de confirmación para el nuevo estado.
func ToggleMessage(status string) string {
	if status == StatusActive {
		return "User enabled successfully"
	}
	return "User disabled successfully"
}

// EnhancedAnalytics analítica extendida, reenviada tal cual.
func (uc *DashboardUseCase) EnhancedAnalytics(ctx context.Context, token string) (dto.DashboardAnalytics, error) {
	data, err := uc.api.GetDashboardAnalytics(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("analítica extendida: %w", err)
	}
	return data, nil
}

// Activity actividad reciente.
func (uc *DashboardUseCase) Activity(ctx context.Context, token string) ([]dto.ActivityEntry, error) {
	entries, err := uc.api.GetActivity(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("actividad: %w", err)
	}
	if entries == nil {
		entries = []dto.ActivityEntry{}
	}
	return entries, nil
}
