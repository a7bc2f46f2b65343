package http

import (
	"net/http"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/pkg/httpx"
)

type PasswordHandler struct {
	Resets *service.PasswordResetService
}

// parseUserType maps the wire user_type field to a population. Absent means
// customer, the self-service default.
func parseUserType(s string) (domain.Kind, bool) {
	switch s {
	case "", "customer":
		return domain.KindCustomer, true
	case "staff":
		return domain.KindStaff, true
	}
	return "", false
}

type forgetPasswordRequest struct {
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}

// Forget kicks off the reset flow. The response is identical whether or not
// the email maps to an account.
func (h *PasswordHandler) Forget(w http.ResponseWriter, r *http.Request) {
	var req forgetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.Email == "" {
		writeBadRequest(w, "email is required.")
		return
	}
	kind, ok := parseUserType(req.UserType)
	if !ok {
		writeBadRequest(w, "user_type must be customer or staff.")
		return
	}

	if err := h.Resets.RequestReset(r.Context(), req.Email, kind); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"detail": "If an account with that email exists, a reset code has been sent.",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	UserType    string `json:"user_type"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Reset redeems a code for a new password.
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		writeBadRequest(w, "email, otp, and new_password are required.")
		return
	}
	kind, ok := parseUserType(req.UserType)
	if !ok {
		writeBadRequest(w, "user_type must be customer or staff.")
		return
	}

	if err := h.Resets.Reset(r.Context(), req.Email, kind, req.OTP, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"detail": "Password has been reset.",
	})
}
