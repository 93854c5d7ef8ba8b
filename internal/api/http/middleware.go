package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/security"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	claimsKey    contextKey = "claims"
)

func requestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func claimsFrom(ctx context.Context) *security.UserClaims {
	if v, ok := ctx.Value(claimsKey).(*security.UserClaims); ok {
		return v
	}
	return nil
}

// requestID tags every request with an X-Request-ID, honoring one supplied
// by the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// authenticate validates the bearer token and stores its claims on the
// request context. Only access tokens are accepted here.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		claims, err := s.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", security.ErrWrongTokenType.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// requireCompany rejects callers whose token is not bound to a company
// account, such as candidate logins.
func requireCompany(w http.ResponseWriter, r *http.Request) (*security.UserClaims, bool) {
	claims := claimsFrom(r.Context())
	if claims == nil || claims.CompanyID <= 0 {
		writeError(w, r, http.StatusForbidden, "forbidden", "a company account is required")
		return nil, false
	}
	return claims, true
}
