package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrRemoteUnavailable   = errors.New("backend remoto no disponible")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConstraintViolation = errors.New("operación viola una restricción del dominio")
	ErrSyncInProgress      = errors.New("sincronización ya en curso para el tenant")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)
