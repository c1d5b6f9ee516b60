package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-secret"

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: 42, Name: "Pedro Gerente", Role: "Gerente"}, "cuentadante-test", 30)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Pedro Gerente", claims.Name)
	assert.Equal(t, "Gerente", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "cuentadante-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "cada token lleva un jti")
}

func TestParse_TokenExpirado(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	tok, err := generateAt(testSecret, Subject{UserID: 1, Role: "Cuentadante"}, "x", 60, past)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: 1, Role: "Cuentadante"}, "x", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenAlterado(t *testing.T) {
	tok, err := Generate(testSecret, Subject{UserID: 1, Role: "Instructor"}, "x", 60)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok+"x")
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", Subject{UserID: 1}, "x", 60)
	assert.ErrorIs(t, err, ErrSecretEmpty)

	_, err = Parse("", "abc")
	assert.ErrorIs(t, err, ErrSecretEmpty)
}
