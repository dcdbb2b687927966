package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/rs/zerolog/log"
)

type contextKey string

// IdentityKey is the context key for the authenticated identity.
const IdentityKey = contextKey("identity")

// Guard rejects requests without a valid bearer token and passes the
// identity down via context.
func Guard(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				apperr.Write(w, r, apperr.Unauthenticated("Authorization Failed", nil))
				return
			}

			id, err := v.Verify(tokenStr)
			if err != nil {
				apperr.Write(w, r, apperr.Unauthenticated("Invalid or expired token", err))
				return
			}

			log.Debug().Str("user_id", id.UserID).Msg("Authenticated request")
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFromContext returns the identity attached by Guard.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(Identity)
	return id, ok
}
