package handler

import (
	"encoding/json"
	"net/http"

	"github.com/synapsehub/support-portal/internal/application/otp"
	"github.com/synapsehub/support-portal/internal/pkg/validate"
	"github.com/synapsehub/support-portal/internal/transport/http/middleware"
)

// OTPHandler handles verification-code issuance and verification.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req otp.RequestCodeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if err := h.svc.RequestCode(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "verification code sent"})
}

func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "no session")
		return
	}
	var req otp.VerifyCodeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.VerifyCode(r.Context(), req.Email, req.OTP, sess); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "email verified"})
}
