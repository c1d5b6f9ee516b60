package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSecretEmpty se retorna cuando no hay clave de firma configurada.
var ErrSecretEmpty = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más el usuario y su rol.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Subject identifica al usuario dueño del token.
type Subject struct {
	UserID int64
	Name   string
	Role   string
}

// Generate genera un token HS256 firmado y con expiración para el usuario.
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	return generateAt(secret, sub, issuer, expMinutes, time.Now())
}

func generateAt(secret string, sub Subject, issuer string, expMinutes int, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrSecretEmpty
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(sub.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: sub.UserID,
		Name:   sub.Name,
		Role:   sub.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración del token y devuelve sus claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrSecretEmpty
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
