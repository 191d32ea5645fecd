package httpx

import (
	"encoding/json"
	"net/http"
)

// RequireAnyRole rejects with 403 unless the caller holds at least one of the
// required roles or carries the superuser flag. It must run after
// AuthnMiddleware and before the handler, so a failed check never reaches any
// mutating code.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if SuperuserFromContext(ctx) {
				next.ServeHTTP(w, r)
				return
			}
			for _, have := range RolesFromContext(ctx) {
				if _, ok := want[have]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeForbidden(w, required...)
		})
	}
}

func writeForbidden(w http.ResponseWriter, required ...string) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":             "forbidden",
		"error_description": "caller lacks a required role",
		"required_roles":    required,
	})
}
