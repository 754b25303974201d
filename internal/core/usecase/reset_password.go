package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// ResetPasswordUseCase completes the recovery flow: it validates the new
// password, stores its bcrypt hash for the pending email and closes the
// recovery window.
type ResetPasswordUseCase struct {
	codes     port.ResetCodeStorePort
	passwords port.PasswordStorePort
}

func NewResetPasswordUseCase(codes port.ResetCodeStorePort, passwords port.PasswordStorePort) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{codes: codes, passwords: passwords}
}

func (uc *ResetPasswordUseCase) Execute(ctx context.Context, password, confirmation string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ResetPassword"})
	ucLogger.Info("Use case started", nil)

	pending, err := uc.codes.Get(ctx)
	if err != nil {
		ucLogger.Warn("Reset failed: no pending recovery attempt", nil)
		return err
	}

	if len(password) < 6 {
		ucLogger.Warn("Reset failed: password too short", nil)
		return domain.NewValidationError("password must be at least 6 characters")
	}
	if password != confirmation {
		ucLogger.Warn("Reset failed: confirmation mismatch", nil)
		return domain.NewValidationError("password confirmation does not match")
	}

	hash, err := domain.HashPassword(password)
	if err != nil {
		ucLogger.Error("Failed to hash password", err, nil)
		return err
	}
	if err := uc.passwords.SetPassword(ctx, pending.Email, hash); err != nil {
		ucLogger.Error("Failed to store password", err, nil)
		return err
	}
	if err := uc.codes.Clear(ctx); err != nil {
		ucLogger.Error("Failed to clear pending code", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: password reset", port.Fields{"email": pending.Email})
	return nil
}
