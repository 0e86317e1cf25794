package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/dto"
)

// PasswordResetHandler recuperación de contraseña con código por correo.
type PasswordResetHandler struct {
	uc   *auth.PasswordResetUseCase
	val  *Validator
	errs *ErrorMapper
}

// NewPasswordResetHandler construye el handler.
func NewPasswordResetHandler(uc *auth.PasswordResetUseCase, val *Validator, errs *ErrorMapper) *PasswordResetHandler {
	return &PasswordResetHandler{uc: uc, val: val, errs: errs}
}

// ForgotPassword godoc
// @Summary      Solicitar código de recuperación
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email, cedula"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/forgot-password [post]
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	if err := h.uc.RequestReset(c.UserContext(), in.Email, in.Cedula); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Se ha enviado un código de recuperación a tu correo"})
}

// VerifyResetToken godoc
// @Summary      Verificar código de recuperación
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyResetTokenRequest  true  "email, resetToken"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/verify-reset-token [post]
func (h *PasswordResetHandler) VerifyResetToken(c *fiber.Ctx) error {
	var in dto.VerifyResetTokenRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	if err := h.uc.VerifyToken(c.UserContext(), in.Email, in.ResetToken); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Código verificado correctamente"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con código
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "email, resetToken, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reset-password [post]
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	if err := h.uc.ResetPassword(c.UserContext(), in.Email, in.ResetToken, in.NewPassword); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña restablecida correctamente"})
}
