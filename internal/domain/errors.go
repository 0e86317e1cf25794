package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                   = errors.New("recurso no encontrado")
	ErrUserNotFound               = errors.New("usuario no encontrado")
	ErrRoleNotFound               = errors.New("el rol especificado no existe")
	ErrEmailAlreadyExists         = errors.New("el email ya está registrado")
	ErrAdminAlreadyExists         = errors.New("ya existe un administrador registrado")
	ErrInvalidInput               = errors.New("entrada inválida")
	ErrWeakPassword               = errors.New("contraseña débil")
	ErrInvalidCredentials         = errors.New("credenciales inválidas")
	ErrUnauthorized               = errors.New("no autorizado")
	ErrInvalidOrExpiredToken      = errors.New("token inválido o expirado")
	ErrDeliveryFailed             = errors.New("no se pudo enviar el correo")
	ErrIdentityVerificationFailed = errors.New("no se pudo verificar la identidad con el proveedor")
	ErrInvalidSignature           = errors.New("firma del webhook inválida")
	ErrUpstream                   = errors.New("fallo del proveedor externo")
)
