package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
	"github.com/jhoicas/cuentadante-api/internal/domain"
	"github.com/jhoicas/cuentadante-api/internal/domain/repository"
	"github.com/jhoicas/cuentadante-api/internal/observability"
	"github.com/jhoicas/cuentadante-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y verificación de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.ExpMinutes <= 0 {
		jwtCfg.ExpMinutes = 480
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password con bcrypt, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (_ *dto.LoginResponse, err error) {
	defer func() { observability.LoginAttempts.WithLabelValues(loginOutcome(err)).Inc() }()

	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("Email y contraseña son requeridos")
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:   "Login exitoso",
		Token:     token,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      dto.ToUserResponse(user),
	}, nil
}

// Verify valida firma y expiración del token y vuelve a leer el usuario.
// Un usuario eliminado o inactivo invalida el token aunque no haya expirado.
func (uc *AuthUseCase) Verify(ctx context.Context, token string) (*dto.VerifyResponse, error) {
	claims, err := uc.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	return &dto.VerifyResponse{Valid: true, User: dto.ToUserResponse(user)}, nil
}

// ParseToken valida el token sin consultar la base de datos. Lo usa el middleware.
func (uc *AuthUseCase) ParseToken(token string) (*jwt.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.UserID == 0 {
		// tokens sin user_id explícito: el subject lleva el id
		id, perr := strconv.ParseInt(claims.Subject, 10, 64)
		if perr != nil || id <= 0 {
			return nil, domain.ErrUnauthorized
		}
		claims.UserID = id
	}
	return claims, nil
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrForbidden):
		return "inactive"
	case domain.IsValidation(err):
		return "invalid_input"
	default:
		return "error"
	}
}
