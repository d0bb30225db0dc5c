package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/dto"
	"github.com/tu-usuario/pos-ledger/internal/domain"
)

// respondError mapea los sentinels de dominio a códigos HTTP. Cualquier error
// no clasificado es un 500 sin detalle interno en el cuerpo.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	case errors.Is(err, domain.ErrConstraintViolation):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: "la operación viola una restricción"})
	case errors.Is(err, domain.ErrSyncInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_IN_PROGRESS", Message: "ya hay una sincronización en curso"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: "el backend remoto no está disponible"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
