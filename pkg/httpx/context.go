package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID    ctxKey = "user_id"
	CtxKeyUsername  ctxKey = "username"
	CtxKeyRoles     ctxKey = "roles"
	CtxKeySuperuser ctxKey = "superuser"
)

// UserIDFromContext returns the authenticated user id, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// UsernameFromContext returns the authenticated username, or "".
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUsername).(string); ok {
		return v
	}
	return ""
}

// RolesFromContext returns the authenticated user's role names.
func RolesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyRoles).([]string); ok {
		return v
	}
	return nil
}

// SuperuserFromContext reports whether the authenticated user carries the
// superuser override flag.
func SuperuserFromContext(ctx context.Context) bool {
	v, ok := ctx.Value(CtxKeySuperuser).(bool)
	return ok && v
}
