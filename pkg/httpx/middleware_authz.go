package httpx

import (
	"net/http"
	"strings"
)

// KindStaff is the claim value marking staff accounts. Customers carry
// "customer" and never pass the staff gates below.
const KindStaff = "staff"

// RequireStaff rejects requests whose token does not belong to a staff
// account.
func RequireStaff() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Kind != KindStaff {
				writeRoleError(w, "staff")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole the caller must be staff holding one of the listed roles.
// Superusers always pass.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Kind != KindStaff {
				writeRoleError(w, required...)
				return
			}
			if claims.Superuser {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := want[claims.Role]; !ok {
				writeRoleError(w, required...)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// 403 with the roles that would have been accepted.
func writeRoleError(w http.ResponseWriter, required ...string) {
	WriteError(w, http.StatusForbidden, "forbidden",
		"requires role: "+strings.Join(required, " or "))
}
