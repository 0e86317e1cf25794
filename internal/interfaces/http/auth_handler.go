package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
)

// AuthHandler maneja registro, login, logout, perfil y login con Google.
type AuthHandler struct {
	uc        *auth.AuthUseCase
	federated *auth.FederatedUseCase
	cookie    TokenCookie
	val       *Validator
	errs      *ErrorMapper
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, federated *auth.FederatedUseCase, cookie TokenCookie, val *Validator, errs *ErrorMapper) *AuthHandler {
	return &AuthHandler{uc: uc, federated: federated, cookie: cookie, val: val, errs: errs}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos de registro"
// @Success      200   {object}  dto.UserSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	res, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	h.cookie.Set(c, res)
	return c.JSON(res.User)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "emailOrUsername, password, rememberMe"
// @Success      200   {object}  dto.UserSummary
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	res, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	h.cookie.Set(c, res)
	return c.JSON(res.User)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Sin estado en el servidor: expira la cookie del token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada"})
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.UserSummary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(out)
}

// GoogleLogin godoc
// @Summary      Login con Google
// @Description  Verifica el ID token de Google Identity Services y crea la cuenta si no existe.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GoogleLoginRequest  true  "credential"
// @Success      200   {object}  dto.UserSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	res, err := h.federated.GoogleLogin(c.UserContext(), in.Credential)
	if err != nil {
		return h.errs.Respond(c, err)
	}
	h.cookie.Set(c, res)
	return c.JSON(res.User)
}
