package http

import (
	"net/http"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/httpx"
)

type StaffHandler struct {
	Accounts *service.AccountService
	Roles    *service.RoleService
	Tokens   *service.TokenService
	store    store.Store
}

// actorFromRequest rebuilds the acting staff member from verified claims.
func actorFromRequest(r *http.Request) service.Actor {
	claims, _ := httpx.ClaimsFromContext(r.Context())
	return service.Actor{
		ID:        claims.Subject,
		Role:      claims.Role,
		Superuser: claims.Superuser,
	}
}

type staffRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register provisions a staff account one hierarchy level below the caller.
// No tokens are issued; the new staff member logs in themselves.
func (h *StaffHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req staffRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeBadRequest(w, "name, email, and password are required.")
		return
	}

	u, err := h.Accounts.ProvisionStaff(r.Context(), actorFromRequest(r), service.ProvisionStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"user": newUserResponse(u, roleName(r.Context(), h.store, u.RoleID)),
	})
}

// Login authenticates a staff member and issues a token pair.
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}

	u, err := h.Accounts.Login(r.Context(), domain.KindStaff, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.Tokens.IssuePair(r.Context(), u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user := newUserResponse(u, roleName(r.Context(), h.store, u.RoleID))
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(pair, &user))
}

// List returns the staff accounts visible to the caller.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.ListStaff(r.Context(), actorFromRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u, roleName(r.Context(), h.store, u.RoleID))
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Accounts.GetStaff(r.Context(), actorFromRequest(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user": newUserResponse(u, roleName(r.Context(), h.store, u.RoleID)),
	})
}

type staffUpdateRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active *bool  `json:"active"`
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req staffUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}

	u, err := h.Accounts.UpdateStaff(r.Context(), actorFromRequest(r), r.PathValue("id"), service.UpdateStaffInput{
		Name:     req.Name,
		RoleName: req.Role,
		Active:   req.Active,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user": newUserResponse(u, roleName(r.Context(), h.store, u.RoleID)),
	})
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.DeleteStaff(r.Context(), actorFromRequest(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreatableRoles tells the caller which roles they may hand out.
func (h *StaffHandler) CreatableRoles(w http.ResponseWriter, r *http.Request) {
	names, err := h.Roles.CreatableRoleNames(r.Context(), actorFromRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"roles": names})
}
