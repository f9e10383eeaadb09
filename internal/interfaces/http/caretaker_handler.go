package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
)

// CaretakerHandler pantallas de cuidadores y vínculos.
type CaretakerHandler struct {
	uc *usecase.CaretakerUseCase
}

// NewCaretakerHandler construye el handler.
func NewCaretakerHandler(uc *usecase.CaretakerUseCase) *CaretakerHandler {
	return &CaretakerHandler{uc: uc}
}

// List godoc
// @Summary      Cuidadores paginados
// @Tags         caretakers
// @Produce      json
// @Param        page    query  int     false  "página"
// @Param        search  query  string  false  "búsqueda"
// @Success      200  {object}  dto.Page[dto.Caretaker]
// @Router       /admin/caretakers [get]
func (h *CaretakerHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), bearer(c), c.QueryInt("page", 1), c.Query("search"))
	if err != nil {
		return writeError(c, err, "Failed to load caretakers")
	}
	return c.JSON(page)
}

// Details godoc
// @Summary      Detalle de cuidador
// @Tags         caretakers
// @Produce      json
// @Param        id  path  string  true  "id de cuidador"
// @Success      200  {object}  dto.Caretaker
// @Router       /admin/caretakers/{id} [get]
func (h *CaretakerHandler) Details(c *fiber.Ctx) error {
	out, err := h.uc.Details(c.UserContext(), bearer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to load caretaker details")
	}
	return c.JSON(out)
}

// AssignablePatients godoc
// @Summary      Pacientes asignables
// @Tags         caretakers
// @Produce      json
// @Success      200  {array}  dto.Patient
// @Router       /admin/caretakers/assignable-patients [get]
func (h *CaretakerHandler) AssignablePatients(c *fiber.Ctx) error {
	return c.JSON(h.uc.AssignablePatients(c.UserContext(), bearer(c)))
}

// Assign godoc
// @Summary      Asignar paciente a cuidador
// @Tags         caretakers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de cuidador"
// @Param        body  body  dto.AssignRequest  true  "patient_id"
// @Success      201  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/caretakers/{id}/patients [post]
func (h *CaretakerHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Assign(c.UserContext(), bearer(c), c.Params("id"), in.PatientID); err != nil {
		return writeError(c, err, "Failed to assign patient")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Patient assigned successfully"})
}

// Links godoc
// @Summary      Vínculos cuidador-paciente
// @Tags         caretakers
// @Produce      json
// @Param        page   query  int  false  "página"
// @Param        limit  query  int  false  "tamaño de página"
// @Success      200  {object}  dto.Page[dto.Link]
// @Router       /admin/links [get]
func (h *CaretakerHandler) Links(c *fiber.Ctx) error {
	page, err := h.uc.Links(c.UserContext(), bearer(c), c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "Failed to load links")
	}
	return c.JSON(page)
}

// RemoveLink godoc
// @Summary      Eliminar vínculo
// @Tags         caretakers
// @Produce      json
// @Param        id  path  string  true  "id de vínculo"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/links/{id} [delete]
func (h *CaretakerHandler) RemoveLink(c *fiber.Ctx) error {
	if err := h.uc.RemoveLink(c.UserContext(), bearer(c), c.Params("id")); err != nil {
		return writeError(c, err, "Failed to remove patient")
	}
	return c.JSON(dto.MessageResponse{Message: "Patient removed successfully"})
}
