package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "api-client", claims.GetSubject())
}

func TestJWTWrongSecret(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	other := NewJWTService("different", time.Hour)

	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)

	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTEmptyToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTMalformed(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestTokenValidatorAdapter(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	validator := svc.AsTokenValidator()

	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "api-client", claims.GetSubject())
}
