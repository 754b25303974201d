package usecase

import (
	"context"
	"strings"
	"time"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// LoginUserUseCase is the mocked authentication flow: after a simulated
// API delay every credential pair is accepted, a session is derived from
// the email alone and persisted under the fixed session key.
type LoginUserUseCase struct {
	sessions  port.SessionStorePort
	tokenSvc  port.TokenServicePort
	mockDelay time.Duration
	tokenTTL  time.Duration
}

func NewLoginUserUseCase(sessions port.SessionStorePort, tokenSvc port.TokenServicePort, mockDelay, tokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{
		sessions:  sessions,
		tokenSvc:  tokenSvc,
		mockDelay: mockDelay,
		tokenTTL:  tokenTTL,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*domain.Session, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	if !strings.Contains(email, "@") {
		ucLogger.Warn("Login failed: malformed email", nil)
		return nil, "", domain.NewValidationError("a valid email address is required")
	}
	if password == "" {
		ucLogger.Warn("Login failed: empty password", nil)
		return nil, "", domain.NewValidationError("password is required")
	}

	// Simulated API delay; the mocked provider always succeeds after it.
	select {
	case <-time.After(uc.mockDelay):
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}

	session := domain.NewSession(email)
	if err := uc.sessions.Save(ctx, session); err != nil {
		ucLogger.Error("Failed to persist session", err, nil)
		return nil, "", err
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, session, uc.tokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: user logged in successfully", port.Fields{"name": session.Name})
	return &session, token, nil
}
