package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/usecase"
)

// DonationHandler pantallas de donación de sangre.
type DonationHandler struct {
	uc *usecase.DonationUseCase
}

// NewDonationHandler construye el handler.
func NewDonationHandler(uc *usecase.DonationUseCase) *DonationHandler {
	return &DonationHandler{uc: uc}
}

// Requests godoc
// @Summary      Solicitudes de donación
// @Description  Si la API falla devuelve una lista vacía.
// @Tags         donations
// @Produce      json
// @Param        page    query  int     false  "página"
// @Param        limit   query  int     false  "tamaño de página (50)"
// @Param        status  query  string  false  "estado"
// @Param        urgent  query  bool    false  "sólo urgentes"
// @Success      200  {object}  dto.Page[dto.DonationRequest]
// @Router       /admin/donation-requests [get]
func (h *DonationHandler) Requests(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.Requests(c.UserContext(), bearer(c), q))
}

// Donations godoc
// @Summary      Donaciones registradas
// @Tags         donations
// @Produce      json
// @Param        page    query  int     false  "página"
// @Param        status  query  string  false  "estado"
// @Success      200  {object}  dto.Page[dto.Donation]
// @Router       /admin/donations [get]
func (h *DonationHandler) Donations(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	return c.JSON(h.uc.Donations(c.UserContext(), bearer(c), q))
}

// Create godoc
// @Summary      Nueva solicitud de donación
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonationRequest  true  "hospital_name, location y contact_number obligatorios"
// @Success      201  {object}  dto.CreateDonationRequest
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /admin/donation-requests [post]
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), bearer(c), in)
	if err != nil {
		return writeError(c, err, "Failed to create donation request")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "id de solicitud"
// @Param        body  body  dto.ApproveRequest  false  "notas"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/donation-requests/{id}/approve [patch]
func (h *DonationHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if err := h.uc.Approve(c.UserContext(), bearer(c), c.Params("id"), in.Notes); err != nil {
		return writeError(c, err, "Failed to approve request")
	}
	return c.JSON(dto.MessageResponse{Message: "Request approved"})
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id de solicitud"
// @Param        body  body  dto.RejectRequest  false  "motivo"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/donation-requests/{id}/reject [patch]
func (h *DonationHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if err := h.uc.Reject(c.UserContext(), bearer(c), c.Params("id"), in.Reason); err != nil {
		return writeError(c, err, "Failed to reject request")
	}
	return c.JSON(dto.MessageResponse{Message: "Request rejected"})
}

// FindDonors godoc
// @Summary      Donantes compatibles
// @Tags         donations
// @Produce      json
// @Param        id     path   string  true   "id de solicitud"
// @Param        limit  query  int     false  "máximo (10)"
// @Success      200  {array}  dto.Donor
// @Router       /admin/donation-requests/{id}/donors [get]
func (h *DonationHandler) FindDonors(c *fiber.Ctx) error {
	donors, err := h.uc.FindDonors(c.UserContext(), bearer(c), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err, "Failed to find donors")
	}
	return c.JSON(donors)
}

// Notify godoc
// @Summary      Notificar donantes
// @Tags         donations
// @Produce      json
// @Param        id  path  string  true  "id de solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /admin/donation-requests/{id}/notify [post]
func (h *DonationHandler) Notify(c *fiber.Ctx) error {
	msg, err := h.uc.Notify(c.UserContext(), bearer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Failed to notify donors")
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}
