package middleware

import (
	"net/http"
	"slices"
	"strings"

	"spicery-be/internal/logger"
	"spicery-be/internal/user"
	"spicery-be/internal/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Auth attaches the caller to the request context when a valid bearer
// token is present. Requests without one, or with a bad one, pass through
// anonymously; RequireRole decides whether that is acceptable.
func Auth(tokens *user.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid bearer token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, string(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers without one of roles. When enforced is false
// every request is let through.
func RequireRole(enforced bool, roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enforced {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role := user.Role(utils.GetUserRoleFromContext(r.Context()))
			if !slices.Contains(roles, role) {
				logger.FromCtx(r.Context()).Warn("forbidden",
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken returns the credential of an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
