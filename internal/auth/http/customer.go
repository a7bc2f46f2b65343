package http

import (
	"net/http"

	"github.com/akashhsiv/api-drf/internal/auth/domain"
	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/pkg/httpx"
)

type CustomerHandler struct {
	Accounts *service.AccountService
	Tokens   *service.TokenService
}

type customerRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a customer account and logs it straight in.
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req customerRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeBadRequest(w, "name, email, and password are required.")
		return
	}

	u, err := h.Accounts.RegisterCustomer(r.Context(), service.RegisterCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.Tokens.IssuePair(r.Context(), u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user := newUserResponse(u, "")
	httpx.WriteJSON(w, http.StatusCreated, newTokenResponse(pair, &user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a customer and issues a token pair.
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Malformed JSON body.")
		return
	}

	u, err := h.Accounts.Login(r.Context(), domain.KindCustomer, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.Tokens.IssuePair(r.Context(), u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user := newUserResponse(u, "")
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(pair, &user))
}
