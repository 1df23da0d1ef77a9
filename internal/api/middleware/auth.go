package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/logging"
)

// Token cookie names.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type contextKey string

const userKey contextKey = "user"

// Authenticator resolves an access token to a sanitized account.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// ErrorWriter renders err in the failure envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Auth rejects the request unless it carries a valid access token for an
// existing account. On success the sanitized account is on the context.
func Auth(auth Authenticator, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, r, domain.Unauthenticated("Unauthorized request"))
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logging.FromContext(r.Context()).Debug("authentication failed", slog.Any("error", err))
				writeError(w, r, err)
				return
			}

			logger := logging.FromContext(r.Context()).With(slog.String("user_id", user.ID.String()))
			ctx := WithUser(r.Context(), user)
			ctx = logging.WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken reads the access token cookie, falling back to the
// Authorization header with any scheme prefix removed.
func BearerToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if i := strings.IndexByte(header, ' '); i >= 0 {
		header = strings.TrimSpace(header[i+1:])
	}
	return header
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}
