package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/akashhsiv/api-drf/internal/auth/service"
	"github.com/akashhsiv/api-drf/internal/auth/store"
	"github.com/akashhsiv/api-drf/pkg/httpx"
	"github.com/akashhsiv/api-drf/pkg/jwtx"
	"github.com/akashhsiv/api-drf/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store                store.Store
	TokenService         *service.TokenService
	AccountService       *service.AccountService
	RoleService          *service.RoleService
	PasswordResetService *service.PasswordResetService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCustomer()
	r.registerStaff()
	r.registerRoles()
	r.registerSession()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCustomer() {
	h := &CustomerHandler{
		Accounts: r.AccountService,
		Tokens:   r.TokenService,
	}

	// Credential endpoints are the brute-force surface; keep them strict.
	r.Mux.Handle("POST /customer/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /customer/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerStaff() {
	h := &StaffHandler{
		Accounts: r.AccountService,
		Roles:    r.RoleService,
		Tokens:   r.TokenService,
		store:    r.store,
	}

	r.Mux.Handle("POST /user/login",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Provisioning requires an authenticated staff caller; the hierarchy
	// check itself lives in the service.
	r.Mux.Handle("POST /user/register",
		httpx.Chain(http.HandlerFunc(h.Register),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireStaff(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /user/{$}",
		httpx.Chain(http.HandlerFunc(h.List),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("admin", "manager"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /user/roles/{$}",
		httpx.Chain(http.HandlerFunc(h.CreatableRoles),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireStaff(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	detail := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin", "manager"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("GET /user/{id}", httpx.Chain(http.HandlerFunc(h.Get), detail...))
	r.Mux.Handle("PUT /user/{id}", httpx.Chain(http.HandlerFunc(h.Update), detail...))
	r.Mux.Handle("DELETE /user/{id}",
		httpx.Chain(http.HandlerFunc(h.Delete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{Roles: r.RoleService}

	admin := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole("admin"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	}
	r.Mux.Handle("GET /roles/{$}", httpx.Chain(http.HandlerFunc(h.List), admin...))
	r.Mux.Handle("POST /roles/{$}", httpx.Chain(http.HandlerFunc(h.Create), admin...))
	r.Mux.Handle("GET /roles/{id}", httpx.Chain(http.HandlerFunc(h.Get), admin...))
	r.Mux.Handle("PUT /roles/{id}", httpx.Chain(http.HandlerFunc(h.Update), admin...))
	r.Mux.Handle("DELETE /roles/{id}", httpx.Chain(http.HandlerFunc(h.Delete), admin...))
}

func (r *Router) registerSession() {
	sess := &SessionHandler{Tokens: r.TokenService}
	pw := &PasswordHandler{Resets: r.PasswordResetService}

	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(sess.Logout),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /auth/token/refresh",
		httpx.Chain(http.HandlerFunc(sess.Refresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Reset endpoints stay strict; they mint and redeem secrets.
	r.Mux.Handle("POST /auth/forget-password",
		httpx.Chain(http.HandlerFunc(pw.Forget),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/reset-password",
		httpx.Chain(http.HandlerFunc(pw.Reset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

// roleName resolves a role ID for response shaping. Lookup failures degrade
// to an empty name rather than failing the request.
func roleName(ctx context.Context, st store.Store, roleID string) string {
	if roleID == "" {
		return ""
	}
	role, err := st.Roles().GetRoleByID(ctx, roleID)
	if err != nil {
		return ""
	}
	return role.Name
}
