package ports

import "github.com/jhoicas/medicare-console/internal/application/dto"

// ReportRenderer genera la representación PDF del reporte de analítica.
type ReportRenderer interface {
	RenderAnalytics(report dto.AnalyticsReport) ([]byte, error)
}
