package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
	"rems-service/internal/core/port/usecases_port"
)

// AuthHandlers covers the mocked login flow and session persistence.
type AuthHandlers struct {
	loginUC    usecases_port.LoginUserUseCasePort
	registerUC usecases_port.RegisterUserUseCasePort
	logoutUC   usecases_port.LogoutUserUseCasePort
	restoreUC  usecases_port.RestoreSessionUseCasePort
}

func NewAuthHandlers(loginUC usecases_port.LoginUserUseCasePort,
	registerUC usecases_port.RegisterUserUseCasePort,
	logoutUC usecases_port.LogoutUserUseCasePort,
	restoreUC usecases_port.RestoreSessionUseCasePort) *AuthHandlers {
	return &AuthHandlers{loginUC: loginUC, registerUC: registerUC, logoutUC: logoutUC, restoreUC: restoreUC}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Login"})

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, token, err := h.loginUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away while the simulated delay was running.
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	logger.Info("User logged in", port.Fields{"email": session.Email})
	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Name:   session.Name,
		Email:  session.Email,
		Avatar: session.Avatar,
		Token:  token,
	})
}

// Register handles POST /api/v1/auth/register. The flow is as mocked as
// login: after the simulated delay the user is signed in immediately.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Register"})

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, token, err := h.registerUC.Execute(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	logger.Info("User registered", port.Fields{"email": session.Email})
	RespondWithJSON(w, http.StatusCreated, SessionResponse{
		Name:   session.Name,
		Email:  session.Email,
		Avatar: session.Avatar,
		Token:  token,
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Logout"})

	if err := h.logoutUC.Execute(r.Context()); err != nil {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /api/v1/auth/session. Returns 204 when no session
// survived the restart, so the client starts logged out without an error.
func (h *AuthHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSession"})

	session, err := h.restoreUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to restore session")
		return
	}
	if session == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	RespondWithJSON(w, http.StatusOK, SessionResponse{
		Name:   session.Name,
		Email:  session.Email,
		Avatar: session.Avatar,
	})
}
