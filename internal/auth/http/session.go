package http

import (
	"net/http"

	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/pkg/httpx"
)

type SessionHandler struct {
	Tokens *service.TokenService
}

type refreshRequest struct {
	RefreshToken string `json:"refresh"`
}

// Logout revokes the presented refresh token. It always answers 200 so a
// caller cannot distinguish live, revoked, and never-issued tokens.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}

	if req.RefreshToken != "" {
		if err := h.Tokens.Revoke(r.Context(), req.RefreshToken); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "Logged out."})
}

// Refresh rotates a refresh token into a fresh pair.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.RefreshToken == "" {
		writeBadRequest(w, "refresh is required.")
		return
	}

	pair, err := h.Tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(pair, nil))
}
