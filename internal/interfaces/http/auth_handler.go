package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/auth"
	"github.com/tu-usuario/pos-ledger/internal/application/dto"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// AuthHandler maneja el login. Un login exitoso es el cambio de contexto de
// tenant: dispara un sync completo en segundo plano.
type AuthHandler struct {
	auth *auth.Service
	hub  *Hub
	log  *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(authSvc *auth.Service, hub *Hub, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, hub: hub, log: log}
}

// Login autentica y devuelve el token. El sync posterior corre desatado del
// request: su falla deja datos stale visibles pero nunca bloquea el login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}

	token, user, err := h.auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return respondError(c, err)
	}

	svc, err := h.hub.ForTenant(c.Context(), user.TenantID)
	if err != nil {
		return respondError(c, err)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := svc.Sync.FullSync(ctx, svc.Store); err != nil {
			h.log.Warn().Err(err).
				Str("tenant_id", user.TenantID).
				Msg("sync post-login falló; la caché queda stale hasta el próximo disparo")
		}
	}()

	return c.JSON(dto.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		TenantID: user.TenantID,
		Name:     user.Name,
		Role:     user.Role,
	})
}
