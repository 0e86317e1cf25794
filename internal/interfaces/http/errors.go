package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
	"github.com/jhoicas/scoreking-api/internal/application/scraping"
	"github.com/jhoicas/scoreking-api/internal/domain"
	"github.com/jhoicas/scoreking-api/internal/domain/password"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// ErrorMapper traduce errores de dominio a respuestas HTTP.
// En producción los 500 no exponen el detalle del error.
type ErrorMapper struct {
	production bool
	log        *logger.Logger
}

// NewErrorMapper construye el mapper.
func NewErrorMapper(production bool, log *logger.Logger) *ErrorMapper {
	return &ErrorMapper{production: production, log: log}
}

type mapping struct {
	target  error
	status  int
	code    string
	message string // vacío: se usa err.Error()
}

var mappings = []mapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInvalidOrExpiredToken, fiber.StatusBadRequest, "INVALID_RESET_TOKEN", "token inválido o expirado"},
	{domain.ErrInvalidSignature, fiber.StatusBadRequest, "INVALID_SIGNATURE", "firma del webhook inválida"},
	{domain.ErrIdentityVerificationFailed, fiber.StatusBadRequest, "INVALID_GOOGLE_TOKEN", "no se pudo verificar la credencial de Google"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrRoleNotFound, fiber.StatusNotFound, "ROLE_NOT_FOUND", "el rol especificado no existe"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrAdminAlreadyExists, fiber.StatusForbidden, "ADMIN_EXISTS", "ya existe un administrador registrado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "contraseña incorrecta"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrDeliveryFailed, fiber.StatusBadGateway, "MAIL_DELIVERY_FAILED", "no se pudo enviar el correo de recuperación"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM_ERROR", "el proveedor de pagos no respondió correctamente"},
	{scraping.ErrScriptNotConfigured, fiber.StatusInternalServerError, "SCRAPER_NOT_CONFIGURED", "script de scraping no configurado"},
}

// Respond escribe la respuesta de error para err.
func (m *ErrorMapper) Respond(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos de entrada inválidos", Errors: verr.fields,
		})
	}
	var pv *password.PolicyViolation
	if errors.As(err, &pv) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "WEAK_PASSWORD", Message: pv.Reason,
			Errors: []dto.FieldError{{Field: "password", Message: pv.Reason}},
		})
	}
	var se *scraping.ScriptError
	if errors.As(err, &se) {
		m.log.Error().Int("exit_code", se.Code).Str("stderr", se.Stderr).Msg("script de scraping falló")
		msg := "el script de scraping falló"
		if !m.production {
			msg = se.Error() + ": " + se.Stderr
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SCRAPER_FAILED", Message: msg})
	}

	for _, mp := range mappings {
		if !errors.Is(err, mp.target) {
			continue
		}
		msg := mp.message
		if msg == "" || (!m.production && mp.status >= fiber.StatusInternalServerError) {
			msg = err.Error()
		}
		if mp.status >= fiber.StatusInternalServerError {
			m.log.Error().Err(err).Str("path", c.Path()).Msg(mp.code)
		}
		return c.Status(mp.status).JSON(dto.ErrorResponse{Code: mp.code, Message: msg})
	}

	m.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	msg := "error interno del servidor"
	if !m.production {
		msg = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}

// FiberErrorHandler manejador global: errores de fiber (404 de ruta, body demasiado grande)
// conservan su status; el resto pasa por Respond.
func (m *ErrorMapper) FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return m.Respond(c, err)
}
