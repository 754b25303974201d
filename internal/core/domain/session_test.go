package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSession_DerivesDisplayFieldsFromEmail(t *testing.T) {
	s := NewSession("nguyen@example.com")

	assert.Equal(t, "Nguyen", s.Name)
	assert.Equal(t, "nguyen@example.com", s.Email)
	assert.Equal(t, "/placeholder.svg?height=40&width=40&text=N", s.Avatar)
	assert.WithinDuration(t, time.Now().UTC(), s.CreatedAt, time.Minute)
}

func TestNewSession_EmptyLocalPart(t *testing.T) {
	s := NewSession("@example.com")

	assert.Empty(t, s.Name)
	assert.Equal(t, "/placeholder.svg?height=40&width=40&text=", s.Avatar)
}

func TestResetCode_Expired(t *testing.T) {
	now := time.Now()
	code := ResetCode{Code: "1234", ExpiresAt: now.Add(180 * time.Second)}

	assert.False(t, code.Expired(now))
	assert.False(t, code.Expired(now.Add(179*time.Second)))
	// The boundary itself counts as expired.
	assert.True(t, code.Expired(now.Add(180*time.Second)))
	assert.True(t, code.Expired(now.Add(time.Hour)))
}

func TestHashPassword_ProducesVerifiableBcryptHash(t *testing.T) {
	hash, err := HashPassword("s3cret-enough")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-enough")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}
