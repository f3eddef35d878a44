package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/lab-catalog/pkg/handlers"
)

// RequireRole rejects requests without a valid bearer token with 401 and
// requests whose principal lacks role with 403. The check runs before the
// wrapped handler so rejected requests cause no side effects.
func RequireRole(v Verifier, role string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			if p.Role != role {
				handlers.RespondError(w, logger, http.StatusForbidden, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// Guard wraps a single handler function with RequireRole.
func Guard(v Verifier, role string, logger *slog.Logger, h http.HandlerFunc) http.HandlerFunc {
	return RequireRole(v, role, logger)(h).ServeHTTP
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
