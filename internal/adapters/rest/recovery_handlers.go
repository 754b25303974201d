package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"rems-service/internal/contextkeys"
	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
	"rems-service/internal/core/port/usecases_port"
)

// RecoveryHandlers drives the forgot-password flow: request a code, resend
// it, verify it, and finally set the new password.
type RecoveryHandlers struct {
	requestUC usecases_port.RequestResetCodeUseCasePort
	resendUC  usecases_port.ResendResetCodeUseCasePort
	verifyUC  usecases_port.VerifyResetCodeUseCasePort
	resetUC   usecases_port.ResetPasswordUseCasePort
}

func NewRecoveryHandlers(requestUC usecases_port.RequestResetCodeUseCasePort,
	resendUC usecases_port.ResendResetCodeUseCasePort,
	verifyUC usecases_port.VerifyResetCodeUseCasePort,
	resetUC usecases_port.ResetPasswordUseCasePort) *RecoveryHandlers {
	return &RecoveryHandlers{requestUC: requestUC, resendUC: resendUC, verifyUC: verifyUC, resetUC: resetUC}
}

// RequestCode handles POST /api/v1/recovery/code.
func (h *RecoveryHandlers) RequestCode(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RequestCode"})

	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expiresAt, err := h.requestUC.Execute(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to issue reset code")
		return
	}

	RespondWithJSON(w, http.StatusAccepted, RequestCodeResponse{ExpiresAt: expiresAt})
}

// ResendCode handles POST /api/v1/recovery/code/resend. Requires a pending
// reset so we know which address to send to.
func (h *RecoveryHandlers) ResendCode(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ResendCode"})

	expiresAt, err := h.resendUC.Execute(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingReset) {
			WriteJSONError(w, http.StatusNotFound, "No password reset in progress")
			return
		}
		logger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to resend reset code")
		return
	}

	RespondWithJSON(w, http.StatusAccepted, RequestCodeResponse{ExpiresAt: expiresAt})
}

// VerifyCode handles POST /api/v1/recovery/verify. An expired code maps to
// 410 so the client prompts for a resend instead of a retype.
func (h *RecoveryHandlers) VerifyCode(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "VerifyCode"})

	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.verifyUC.Execute(r.Context(), req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingReset):
			WriteJSONError(w, http.StatusNotFound, "No password reset in progress")
		case errors.Is(err, domain.ErrExpired):
			WriteJSONError(w, http.StatusGone, err.Error())
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to verify reset code")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword handles POST /api/v1/recovery/password.
func (h *RecoveryHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ResetPassword"})

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.resetUC.Execute(r.Context(), req.Password, req.Confirmation); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingReset):
			WriteJSONError(w, http.StatusNotFound, "No password reset in progress")
		case errors.Is(err, domain.ErrValidation):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("Use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to reset password")
		}
		return
	}

	logger.Info("Password reset completed", nil)
	w.WriteHeader(http.StatusNoContent)
}
