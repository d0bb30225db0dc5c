package http

import (
	"github.com/gofiber/fiber/v2"
)

// SyncHandler expone el disparo explícito del sync completo.
type SyncHandler struct {
	hub *Hub
}

// NewSyncHandler construye el handler.
func NewSyncHandler(hub *Hub) *SyncHandler {
	return &SyncHandler{hub: hub}
}

// Run ejecuta un sync completo del tenant, en línea con el request. 409 si ya
// hay uno en vuelo, 503 si el remoto no responde (la caché queda parcial y el
// próximo disparo reintenta desde cero).
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Sync.FullSync(c.Context(), svc.Store); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
