package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/pkg/jwt"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// Service autentica usuarios y emite tokens atados al tenant. El login es el
// cambio de contexto de tenant: el handler dispara un sync completo después de
// un login exitoso.
type Service struct {
	userRepo   repository.UserRepository
	secret     string
	issuer     string
	expMinutes int
	log        *logger.Logger
}

// NewService construye el servicio de autenticación.
func NewService(userRepo repository.UserRepository, secret, issuer string, expMinutes int, log *logger.Logger) *Service {
	return &Service{userRepo: userRepo, secret: secret, issuer: issuer, expMinutes: expMinutes, log: log}
}

// Login verifica credenciales y devuelve el token JWT con usuario, tenant y
// rol. Cualquier falla de credenciales responde igual para no filtrar qué
// usuarios existen.
func (s *Service) Login(_ context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.Status != "active" {
		return "", nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("email", email).Msg("intento de login con contraseña inválida")
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(s.secret, user.ID, user.TenantID, user.Role, s.issuer, s.expMinutes)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("tenant_id", user.TenantID).
		Str("role", user.Role).
		Msg("login exitoso")
	return token, user, nil
}

// HashPassword genera el hash bcrypt para el alta de usuarios.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
