package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"nexcrm/internal/auth"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	claimsKey    contextKey = "claims"
)

// protected wraps a handler with the standard middleware plus JWT
// verification. The verified claims land in the request context.
func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return s.withSecurityHeaders(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respondError(w, http.StatusUnauthorized, "malformed authorization header")
			return
		}

		claims, err := s.jwtManager.Validate(tokenString)
		if err != nil {
			slog.WarnContext(r.Context(), "Token validation failed", "error", err)
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the verified claims placed by the protected middleware.
func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

// requireRole sends 403 and returns false unless the caller has the role.
func requireRole(w http.ResponseWriter, r *http.Request, role string) bool {
	claims := claimsFrom(r)
	if claims == nil || claims.Role != role {
		respondError(w, http.StatusForbidden, "insufficient role")
		return false
	}
	return true
}

// requirePermission sends 403 and returns false unless the caller holds the
// permission. SUPER_ADMIN passes every check.
func requirePermission(w http.ResponseWriter, r *http.Request, permission string) bool {
	claims := claimsFrom(r)
	if claims == nil {
		respondError(w, http.StatusForbidden, "insufficient permissions")
		return false
	}
	if claims.Role == roleSuperAdmin || claims.HasPermission(permission) {
		return true
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

const roleSuperAdmin = "SUPER_ADMIN"
