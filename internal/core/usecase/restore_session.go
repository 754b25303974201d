package usecase

import (
	"context"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

// RestoreSessionUseCase loads the persisted session at startup. A missing
// or unreadable record simply means nobody is signed in.
type RestoreSessionUseCase struct {
	sessions port.SessionStorePort
}

func NewRestoreSessionUseCase(sessions port.SessionStorePort) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{sessions: sessions}
}

func (uc *RestoreSessionUseCase) Execute(ctx context.Context) (*domain.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "RestoreSession"})

	session, err := uc.sessions.Load(ctx)
	if err != nil {
		// Corrupt stored data is dropped rather than surfaced; the user
		// just has to sign in again.
		ucLogger.Warn("Stored session could not be read, clearing it", port.Fields{"error": err.Error()})
		if clearErr := uc.sessions.Clear(ctx); clearErr != nil {
			ucLogger.Error("Failed to clear unreadable session", clearErr, nil)
		}
		return nil, nil
	}
	if session == nil {
		ucLogger.Debug("No stored session found", nil)
		return nil, nil
	}

	ucLogger.Info("Session restored", port.Fields{"email": session.Email})
	return session, nil
}
