package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rems-service/internal/adapters/codestore"
	"rems-service/internal/core/domain"
)

func TestRequestResetCode_IssuesFourDigitCode(t *testing.T) {
	codes := codestore.NewCodeStore()
	uc := NewRequestResetCodeUseCase(codes, time.Millisecond, 180*time.Second)

	expiresAt, err := uc.Execute(context.Background(), "linh@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(180*time.Second), expiresAt, 5*time.Second)

	pending, err := codes.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "linh@example.com", pending.Email)
	assert.Regexp(t, `^\d{4}$`, pending.Code)
	assert.GreaterOrEqual(t, pending.Code, "1000")
}

func TestRequestResetCode_RejectsMalformedEmail(t *testing.T) {
	uc := NewRequestResetCodeUseCase(codestore.NewCodeStore(), time.Millisecond, time.Minute)

	_, err := uc.Execute(context.Background(), "no-at-sign")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequestResetCode_ReplacesPendingCode(t *testing.T) {
	codes := codestore.NewCodeStore()
	uc := NewRequestResetCodeUseCase(codes, time.Millisecond, time.Minute)

	_, err := uc.Execute(context.Background(), "first@example.com")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "second@example.com")
	require.NoError(t, err)

	pending, err := codes.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", pending.Email)
}

func TestResendResetCode_ReusesPendingEmail(t *testing.T) {
	codes := codestore.NewCodeStore()
	request := NewRequestResetCodeUseCase(codes, time.Millisecond, time.Minute)
	resend := NewResendResetCodeUseCase(request, codes)

	_, err := request.Execute(context.Background(), "linh@example.com")
	require.NoError(t, err)

	_, err = resend.Execute(context.Background())
	require.NoError(t, err)

	pending, err := codes.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "linh@example.com", pending.Email)
}

func TestResendResetCode_FailsWithoutPendingAttempt(t *testing.T) {
	codes := codestore.NewCodeStore()
	resend := NewResendResetCodeUseCase(NewRequestResetCodeUseCase(codes, time.Millisecond, time.Minute), codes)

	_, err := resend.Execute(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoPendingReset)
}

func TestVerifyResetCode_AcceptsAnyFourDigitInputWhileUnexpired(t *testing.T) {
	codes := codestore.NewCodeStore()
	require.NoError(t, codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	uc := NewVerifyResetCodeUseCase(codes)

	// The issued code itself and a completely different 4-digit input are
	// both accepted inside the window.
	assert.NoError(t, uc.Execute(context.Background(), "4821"))
	assert.NoError(t, uc.Execute(context.Background(), "0000"))
}

func TestVerifyResetCode_RejectsNonFourDigitInput(t *testing.T) {
	codes := codestore.NewCodeStore()
	require.NoError(t, codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	uc := NewVerifyResetCodeUseCase(codes)

	for _, input := range []string{"", "123", "12345", "12a4", "абвг"} {
		assert.ErrorIs(t, uc.Execute(context.Background(), input), domain.ErrValidation, "input %q", input)
	}
}

func TestVerifyResetCode_ExpiredWindow(t *testing.T) {
	codes := codestore.NewCodeStore()
	require.NoError(t, codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(-time.Second),
	}))
	uc := NewVerifyResetCodeUseCase(codes)

	err := uc.Execute(context.Background(), "4821")

	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestVerifyResetCode_NoPendingAttempt(t *testing.T) {
	uc := NewVerifyResetCodeUseCase(codestore.NewCodeStore())

	err := uc.Execute(context.Background(), "1234")

	assert.ErrorIs(t, err, domain.ErrNoPendingReset)
}

func TestResetPassword_StoresHashAndClosesWindow(t *testing.T) {
	codes := codestore.NewCodeStore()
	require.NoError(t, codes.Put(context.Background(), domain.ResetCode{
		Code:      "4821",
		Email:     "linh@example.com",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	uc := NewResetPasswordUseCase(codes, codes)

	require.NoError(t, uc.Execute(context.Background(), "new-password", "new-password"))

	hash, ok := codes.PasswordHash("linh@example.com")
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")))

	// The recovery window is closed.
	_, err := codes.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoPendingReset)
}

func TestResetPassword_Validation(t *testing.T) {
	newStore := func(t *testing.T) *codestore.CodeStore {
		t.Helper()
		codes := codestore.NewCodeStore()
		require.NoError(t, codes.Put(context.Background(), domain.ResetCode{
			Code:      "4821",
			Email:     "linh@example.com",
			ExpiresAt: time.Now().Add(time.Minute),
		}))
		return codes
	}

	t.Run("too short", func(t *testing.T) {
		codes := newStore(t)
		err := NewResetPasswordUseCase(codes, codes).Execute(context.Background(), "short", "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		codes := newStore(t)
		err := NewResetPasswordUseCase(codes, codes).Execute(context.Background(), "long-enough", "different")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("no pending attempt", func(t *testing.T) {
		codes := codestore.NewCodeStore()
		err := NewResetPasswordUseCase(codes, codes).Execute(context.Background(), "long-enough", "long-enough")
		assert.ErrorIs(t, err, domain.ErrNoPendingReset)
	})
}
