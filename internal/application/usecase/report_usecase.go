package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/ports"
)

const reportActivityRows = 20

// ReportUseCase genera el PDF de analítica del sistema.
type ReportUseCase struct {
	api      ports.AdminAPI
	renderer ports.ReportRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(api ports.AdminAPI, renderer ports.ReportRenderer) *ReportUseCase {
	return &ReportUseCase{api: api, renderer: renderer, now: time.Now}
}

// AnalyticsPDF trae analítica y actividad en paralelo y las renderiza.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *ReportUseCase) AnalyticsPDF(ctx context.Context, token, generatedBy string) ([]byte, string, error) {
	var (
		analytics *dto.SystemAnalytics
		activity  []dto.ActivityEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = uc.api.GetAnalytics(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = uc.api.GetActivity(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	if len(activity) > reportActivityRows {
		activity = activity[:reportActivityRows]
	}

	now := uc.now()
	report := dto.AnalyticsReport{
		Title:       "System Analytics",
		GeneratedBy: generatedBy,
		GeneratedAt: now,
		Activity:    activity,
	}
	if analytics != nil {
		report.Analytics = *analytics
	}

	pdf, err := uc.renderer.RenderAnalytics(report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("analytics-%s.pdf", now.Format("20060102-1504")), nil
}
