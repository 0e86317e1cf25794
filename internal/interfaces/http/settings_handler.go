package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/usecase"
)

// SettingsHandler ajustes de la cuenta autenticada.
type SettingsHandler struct {
	uc   *usecase.SettingsUseCase
	val  *Validator
	errs *ErrorMapper
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, val *Validator, errs *ErrorMapper) *SettingsHandler {
	return &SettingsHandler{uc: uc, val: val, errs: errs}
}

// UpdateUsername godoc
// @Summary      Cambiar nombre de usuario
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateUsernameRequest  true  "username"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/settings/username [put]
func (h *SettingsHandler) UpdateUsername(c *fiber.Ctx) error {
	var in dto.UpdateUsernameRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	if err := h.uc.UpdateUsername(c.UserContext(), GetUserID(c), in.Username); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Nombre de usuario actualizado"})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/settings/password [put]
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := h.val.bind(c, &in); err != nil {
		return h.errs.Respond(c, err)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in.CurrentPassword, in.NewPassword); err != nil {
		return h.errs.Respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada"})
}
