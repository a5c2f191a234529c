package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "e-wallet-core")
	userID := uuid.New()

	token, expiry, err := svc.Generate(userID, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	svc1 := NewJWTTokenService("secret-one", time.Hour, "e-wallet-core")
	svc2 := NewJWTTokenService("secret-two", time.Hour, "e-wallet-core")

	token, _, err := svc1.Generate(uuid.New(), "bob@example.com")
	require.NoError(t, err)

	_, err = svc2.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Expired(t *testing.T) {
	svc := NewJWTTokenService("test-secret", -time.Minute, "e-wallet-core")

	token, _, err := svc.Generate(uuid.New(), "carol@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_Garbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret", time.Hour, "e-wallet-core")

	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}
