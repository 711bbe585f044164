package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const subjectKey contextKey = "subject"

// TokenVerifier validates a session token and returns the subject it asserts.
type TokenVerifier interface {
	Verify(tokenStr string) (string, error)
}

// Auth returns middleware that validates the Bearer token and injects the
// authenticated subject into the request context. A missing header, a header
// that is not exactly "Bearer <token>", and a token the verifier rejects all
// answer 401; the distinction only reaches the logs.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				slog.Warn("malformed authorization header", "path", r.URL.Path)
				writeJSONError(w, http.StatusUnauthorized, "invalid authentication format")
				return
			}
			subject, err := verifier.Verify(parts[1])
			if err != nil {
				slog.Warn("token rejected", "path", r.URL.Path, "err", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext extracts the authenticated subject from the request context.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
