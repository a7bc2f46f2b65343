package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/pkg/httpx"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

// ErrorResponse is the error envelope every endpoint shares.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// UserResponse is the public representation of a user. Password hashes and
// OTP state never leave the service.
type UserResponse struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Superuser bool       `json:"superuser,omitempty"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserResponse(u domain.User, roleName string) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Kind:      string(u.Kind),
		Email:     u.Email,
		Name:      u.Name,
		Role:      roleName,
		Phone:     u.Phone,
		Address:   u.Address,
		Superuser: u.Superuser,
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse is returned by login, register, and refresh endpoints.
type TokenResponse struct {
	AccessToken  string        `json:"access"`
	RefreshToken string        `json:"refresh"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

func newTokenResponse(p *domain.TokenPair, user *UserResponse) TokenResponse {
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    int64(p.ExpiresIn.Seconds()),
		User:         user,
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(v)
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}

// writeServiceError translates service sentinels into HTTP responses. Errors
// without a mapping become opaque 500s; details go to the log only.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_credentials",
			ErrorDescription: "Invalid email or password.",
		})
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_refresh_token",
			ErrorDescription: "The refresh token is expired, revoked, or unknown.",
		})
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "email_taken",
			ErrorDescription: "An account with that email already exists.",
		})
	case errors.Is(err, service.ErrWeakPassword):
		writeBadRequest(w, "Password must be at least 8 characters.")
	case errors.Is(err, service.ErrRoleNotAllowed):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
			Error:            "role_not_allowed",
			ErrorDescription: "You may not create accounts with that role.",
		})
	case errors.Is(err, service.ErrUnknownRole), errors.Is(err, service.ErrRoleNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "role_not_found",
			ErrorDescription: "No such role.",
		})
	case errors.Is(err, service.ErrRoleTaken):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "role_taken",
			ErrorDescription: "A role with that name already exists.",
		})
	case errors.Is(err, service.ErrRoleInUse):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "role_in_use",
			ErrorDescription: "The role is still assigned to staff accounts.",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: "You are not allowed to perform this action.",
		})
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "user_not_found",
			ErrorDescription: "No such user.",
		})
	case errors.Is(err, service.ErrUnknownEmail):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "unknown_email",
			ErrorDescription: "No account with that email.",
		})
	case errors.Is(err, service.ErrInvalidOTP):
		writeBadRequestCode(w, "invalid_otp", "The code is wrong or has expired.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Something went wrong.",
		})
	}
}

func writeBadRequestCode(w http.ResponseWriter, code, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
	})
}
