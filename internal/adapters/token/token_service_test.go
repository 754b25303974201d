package token_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rems-service/internal/core/domain"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)
	session := domain.NewSession("linh@example.com")

	token, err := svc.GenerateToken(context.Background(), session, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, session.Name, claims.Name)
	assert.Equal(t, session.Email, claims.Email)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), domain.NewSession("linh@example.com"), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewTokenService("key-one")
	require.NoError(t, err)
	verifier, err := NewTokenService("key-two")
	require.NoError(t, err)

	token, err := issuer.GenerateToken(context.Background(), domain.NewSession("linh@example.com"), time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, err := NewTokenService("test-signing-key")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewTokenService_RequiresKey(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}
