package http

import (
	"net/http"
	"time"

	"github.com/akashhsiv/api-drf/pkg/httpx"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /{$}", r.handleDiscovery)
	r.Mux.HandleFunc("GET /livez", r.handleLivez)
	r.Mux.HandleFunc("GET /readyz", r.handleReadyz)
}

// handleDiscovery lists the API surface so clients can find their way
// without external docs.
func (r *Router) handleDiscovery(w http.ResponseWriter, req *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"service": "api-drf-auth",
		"version": r.buildVersion,
		"endpoints": map[string]string{
			"customer_register": "POST /customer/register",
			"customer_login":    "POST /customer/login",
			"staff_register":    "POST /user/register",
			"staff_login":       "POST /user/login",
			"staff_list":        "GET /user/",
			"staff_detail":      "GET|PUT|DELETE /user/{id}",
			"creatable_roles":   "GET /user/roles/",
			"roles":             "GET|POST /roles/",
			"role_detail":       "GET|PUT|DELETE /roles/{id}",
			"logout":            "POST /auth/logout",
			"forget_password":   "POST /auth/forget-password",
			"reset_password":    "POST /auth/reset-password",
			"token_refresh":     "POST /auth/token/refresh",
		},
	})
}

func (r *Router) handleLivez(w http.ResponseWriter, req *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": r.buildVersion,
		"uptime":  time.Since(r.startTime).Round(time.Second).String(),
	})
}

// handleReadyz fails when the database stops answering, so orchestrators
// pull the instance out of rotation.
func (r *Router) handleReadyz(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	if err := r.store.Ping(ctx); err != nil {
		slogx.FromContext(ctx).Error("readiness probe failed", "err", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
