package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
)

// PatientHandler pantallas de pacientes.
type PatientHandler struct {
	uc *usecase.PatientUseCase
}

// NewPatientHandler construye el handler.
func NewPatientHandler(uc *usecase.PatientUseCase) *PatientHandler {
	return &PatientHandler{uc: uc}
}

// List godoc
// @Summary      Pacientes paginados
// @Tags         patients
// @Produce      json
// @Param        page    query  int     false  "página"
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {object}  dto.Page[dto.Patient]
// @Router       /admin/patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), bearer(c), c.QueryInt("page", 1), c.Query("search"))
	if err != nil {
		return writeError(c, err, "Failed to load patients")
	}
	return c.JSON(page)
}

// Details godoc
// @Summary      Detalle de paciente
// @Description  Perfil, medicamentos y adherencia de 30 días.
// @Tags         patients
// @Produce      json
// @Param        id  path  string  true  "id de paciente"
// @Success      200  {object}  dto.PatientDetails
// @Router       /admin/patients/{id} [get]
func (h *PatientHandler) Details(c *fiber.Ctx) error {
	out, err := h.uc.Details(c.UserContext(), bearer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to load patient details")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar paciente
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "id de paciente"
// @Param        body  body  dto.PatientUpdateRequest  true  "campos editables"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/patients/{id} [patch]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	var in dto.PatientUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Update(c.UserContext(), bearer(c), c.Params("id"), in); err != nil {
		return writeError(c, err, "Failed to update patient")
	}
	return c.JSON(dto.MessageResponse{Message: "Patient updated successfully"})
}
