package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/port"
)

type LogoutUserUseCase struct {
	sessions port.SessionStorePort
}

func NewLogoutUserUseCase(sessions port.SessionStorePort) *LogoutUserUseCase {
	return &LogoutUserUseCase{sessions: sessions}
}

func (uc *LogoutUserUseCase) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "LogoutUser"})

	if err := uc.sessions.Clear(ctx); err != nil {
		ucLogger.Error("Failed to clear session", err, nil)
		return err
	}

	ucLogger.Info("Use case finished: user logged out", nil)
	return nil
}
