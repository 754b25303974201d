package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// RequestResetCodeUseCase opens the password-recovery window: it issues a
// random 4-digit code and stores it with a fixed expiry. Issuing a new code
// replaces any pending one.
type RequestResetCodeUseCase struct {
	codes     port.ResetCodeStorePort
	mockDelay time.Duration
	codeTTL   time.Duration
}

func NewRequestResetCodeUseCase(codes port.ResetCodeStorePort, mockDelay, codeTTL time.Duration) *RequestResetCodeUseCase {
	return &RequestResetCodeUseCase{codes: codes, mockDelay: mockDelay, codeTTL: codeTTL}
}

func (uc *RequestResetCodeUseCase) Execute(ctx context.Context, email string) (time.Time, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RequestResetCode",
		"email":    email,
	})
	ucLogger.Info("Use case started", nil)

	if !strings.Contains(email, "@") {
		ucLogger.Warn("Request failed: malformed email", nil)
		return time.Time{}, domain.NewValidationError("a valid email address is required")
	}

	// Simulated delay of the mocked email delivery.
	select {
	case <-time.After(uc.mockDelay):
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}

	code := domain.ResetCode{
		Code:      fmt.Sprintf("%04d", 1000+rand.Intn(9000)),
		Email:     email,
		ExpiresAt: time.Now().Add(uc.codeTTL),
	}
	if err := uc.codes.Put(ctx, code); err != nil {
		ucLogger.Error("Failed to store verification code", err, nil)
		return time.Time{}, err
	}

	// The mocked flow has no mail transport; the code only shows up in the
	// service log, the way the original demo printed it to the console.
	ucLogger.Info("Verification code issued", port.Fields{
		"code":       code.Code,
		"expires_at": code.ExpiresAt,
	})
	return code.ExpiresAt, nil
}

// ResendResetCodeUseCase re-issues a code for the email of the pending
// recovery attempt, restarting the expiry window.
type ResendResetCodeUseCase struct {
	codes   *RequestResetCodeUseCase
	pending port.ResetCodeStorePort
}

func NewResendResetCodeUseCase(request *RequestResetCodeUseCase, pending port.ResetCodeStorePort) *ResendResetCodeUseCase {
	return &ResendResetCodeUseCase{codes: request, pending: pending}
}

func (uc *ResendResetCodeUseCase) Execute(ctx context.Context) (time.Time, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ResendResetCode"})

	current, err := uc.pending.Get(ctx)
	if err != nil {
		ucLogger.Warn("Resend failed: no pending recovery attempt", nil)
		return time.Time{}, err
	}

	ucLogger.Info("Re-issuing verification code", port.Fields{"email": current.Email})
	return uc.codes.Execute(ctx, current.Email)
}
