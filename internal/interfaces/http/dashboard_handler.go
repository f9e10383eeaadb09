package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
)

// DashboardHandler maneja el dashboard de administración y el reporte PDF.
type DashboardHandler struct {
	uc     *usecase.DashboardUseCase
	report *usecase.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase, report *usecase.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// Get godoc
// @Summary      Dashboard de administración
// @Description  Analítica del sistema y primera página de usuarios, en paralelo.
// @Tags         admin
// @Produce      json
// @Param        role  query  string  false  "filtro de rol (all por defecto)"
// @Success      200  {object}  dto.DashboardView
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	view, err := h.uc.Load(c.UserContext(), bearer(c), c.Query("role", "all"))
	if err != nil {
		return writeError(c, err, "Failed to load dashboard data")
	}
	return c.JSON(view)
}

// Users godoc
// @Summary      Usuarios paginados
// @Tags         admin
// @Produce      json
// @Param        page   query  int     false  "página"
// @Param        limit  query  int     false  "tamaño de página"
// @Param        role   query  string  false  "filtro de rol"
// @Success      200  {object}  dto.Page[dto.UserSummary]
// @Router       /admin/users [get]
func (h *DashboardHandler) Users(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	page, err := h.uc.Users(c.UserContext(), bearer(c), q)
	if err != nil {
		return writeError(c, err, "Failed to load users")
	}
	return c.JSON(page)
}

// ToggleStatus godoc
// @Summary      Alternar estado de usuario
// @Description  active ↔ inactive; los administradores no se pueden deshabilitar.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "id de usuario"
// @Param        body  body  dto.ToggleStatusRequest  true  "estado actual y rol"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /admin/users/{id}/status [patch]
func (h *DashboardHandler) ToggleStatus(c *fiber.Ctx) error {
	var in dto.ToggleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	next, err := h.uc.ToggleUserStatus(c.UserContext(), bearer(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Failed to update user status")
	}
	return c.JSON(fiber.Map{"status": next, "message": usecase.ToggleMessage(next)})
}

// EnhancedAnalytics godoc
// @Summary      Analítica extendida
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/analytics/dashboard [get]
func (h *DashboardHandler) EnhancedAnalytics(c *fiber.Ctx) error {
	data, err := h.uc.EnhancedAnalytics(c.UserContext(), bearer(c))
	if err != nil {
		return writeError(c, err, "Failed to load analytics")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Activity godoc
// @Summary      Actividad reciente
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.ActivityEntry
// @Router       /admin/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	entries, err := h.uc.Activity(c.UserContext(), bearer(c))
	if err != nil {
		return writeError(c, err, "Failed to load activity")
	}
	return c.JSON(entries)
}

// Report godoc
// @Summary      Reporte PDF de analítica
// @Tags         admin
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /admin/reports/analytics.pdf [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	by := ""
	if u := StoreFrom(c).Snapshot().User; u != nil {
		by = u.Email
	}
	pdf, name, err := h.report.AnalyticsPDF(c.UserContext(), bearer(c), by)
	if err != nil {
		return writeError(c, err, "Failed to generate report")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(pdf)
}
