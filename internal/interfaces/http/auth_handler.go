package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medicare-console/internal/application/dto"
	"github.com/jhoicas/medicare-console/internal/application/session"
)

// AuthHandler maneja login, registro, logout y la vista de sesión.
type AuthHandler struct{}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func toResultResponse(r session.Result) dto.ResultResponse {
	return dto.ResultResponse{Success: r.Success, Message: r.Message, Navigate: r.Navigate}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Autentica contra la API remota y guarda token + usuario en la sesión de la pestaña.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ResultResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res := StoreFrom(c).Login(c.UserContext(), strings.TrimSpace(in.Email), in.Password)
	if !res.Success {
		return c.Status(fiber.StatusUnauthorized).JSON(toResultResponse(res))
	}
	return c.JSON(toResultResponse(res))
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Reenvía el formulario sin modificar; no inicia sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "campos de registro"
// @Success      200   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ResultResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterRequest
	if err := c.BodyParser(&form); err != nil {
		return badBody(c)
	}
	res := StoreFrom(c).Register(c.UserContext(), form)
	if !res.Success {
		return c.Status(fiber.StatusBadRequest).JSON(toResultResponse(res))
	}
	return c.JSON(toResultResponse(res))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.ResultResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(toResultResponse(StoreFrom(c).Logout(c.UserContext())))
}

// Session godoc
// @Summary      Estado de la sesión
// @Description  user, token, loading y los flags de rol derivados.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	snap := StoreFrom(c).Snapshot()
	return c.JSON(dto.SessionResponse{
		User:            snap.User,
		Token:           snap.Token,
		Loading:         snap.Loading(),
		IsAuthenticated: snap.IsAuthenticated(),
		IsPatient:       snap.IsPatient(),
		IsCaretaker:     snap.IsCaretaker(),
		IsDonor:         snap.IsDonor(),
		IsAdmin:         snap.IsAdmin(),
	})
}

// LoginPage godoc
// @Summary      Pantalla de login (pública)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	snap := StoreFrom(c).Snapshot()
	out := fiber.Map{"page": "login", "isAuthenticated": snap.IsAuthenticated()}
	if snap.IsAuthenticated() {
		out["home"] = session.HomeFor(snap.Role())
	}
	return c.JSON(out)
}
