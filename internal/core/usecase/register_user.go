package usecase

import (
	"context"
	"strings"
	"time"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// RegisterUserUseCase is the mocked sign-up flow. It mirrors login: after
// the simulated delay every registration succeeds and signs the user in
// right away. A provided display name wins over the one derived from the
// email.
type RegisterUserUseCase struct {
	sessions  port.SessionStorePort
	tokenSvc  port.TokenServicePort
	mockDelay time.Duration
	tokenTTL  time.Duration
}

func NewRegisterUserUseCase(sessions port.SessionStorePort, tokenSvc port.TokenServicePort, mockDelay, tokenTTL time.Duration) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		sessions:  sessions,
		tokenSvc:  tokenSvc,
		mockDelay: mockDelay,
		tokenTTL:  tokenTTL,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, name, email, password string) (*domain.Session, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"email":    email,
	})
	ucLogger.Info("Use case started: registering user", nil)

	if !strings.Contains(email, "@") {
		ucLogger.Warn("Registration failed: malformed email", nil)
		return nil, "", domain.NewValidationError("a valid email address is required")
	}
	if password == "" {
		ucLogger.Warn("Registration failed: empty password", nil)
		return nil, "", domain.NewValidationError("password is required")
	}

	select {
	case <-time.After(uc.mockDelay):
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}

	session := domain.NewSession(email)
	if name = strings.TrimSpace(name); name != "" {
		session.Name = name
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		ucLogger.Error("Failed to persist session", err, nil)
		return nil, "", err
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, session, uc.tokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after registration", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: user registered and signed in", port.Fields{"name": session.Name})
	return &session, token, nil
}
