package http

import (
	"net/http"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/pkg/httpx"
)

type RolesHandler struct {
	Roles *service.RoleService
}

type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func newRoleResponse(r domain.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
		CreatedAt:   r.CreatedAt,
	}
}

func (h *RolesHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Roles.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]RoleResponse, len(roles))
	for i, role := range roles {
		out[i] = newRoleResponse(role)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"roles": out})
}

type roleCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (h *RolesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roleCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required.")
		return
	}

	role, err := h.Roles.Create(r.Context(), req.Name, req.Description, req.Permissions)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"role": newRoleResponse(role)})
}

func (h *RolesHandler) Get(w http.ResponseWriter, r *http.Request) {
	role, err := h.Roles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"role": newRoleResponse(role)})
}

type roleUpdateRequest struct {
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

func (h *RolesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req roleUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}

	role, err := h.Roles.Update(r.Context(), r.PathValue("id"), req.Description, req.Permissions)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"role": newRoleResponse(role)})
}

func (h *RolesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Roles.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
