package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/videotube/internal/api/middleware"
	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	tokens map[string]*domain.User
	seen   string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	f.seen = token
	if user, ok := f.tokens[token]; ok {
		return user, nil
	}
	return nil, domain.Unauthenticated("Invalid access token")
}

func statusWriter(w http.ResponseWriter, _ *http.Request, err error) {
	w.Header().Set("X-Error-Kind", domain.KindOf(err).String())
	w.WriteHeader(http.StatusUnauthorized)
}

func TestAuth(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "alex"}
	auth := &fakeAuthenticator{tokens: map[string]*domain.User{"good": user}}

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantToken  string
	}{
		{
			name:       "no credential",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "good"})
			},
			wantStatus: http.StatusOK,
			wantToken:  "good",
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good")
			},
			wantStatus: http.StatusOK,
			wantToken:  "good",
		},
		{
			name: "cookie wins over header",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "good"})
				r.Header.Set("Authorization", "Bearer other")
			},
			wantStatus: http.StatusOK,
			wantToken:  "good",
		},
		{
			name: "invalid token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer forged")
			},
			wantStatus: http.StatusUnauthorized,
			wantToken:  "forged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth.seen = ""
			var got *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = middleware.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			middleware.Auth(auth, statusWriter)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantToken, auth.seen)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, got)
				assert.Equal(t, user.ID, got.ID)
			} else {
				assert.Nil(t, got)
				assert.Equal(t, "unauthenticated", rec.Header().Get("X-Error-Kind"))
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "Bearer abc", want: "abc"},
		{header: "bearer   abc ", want: "abc"},
		{header: "abc", want: "abc"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", tt.header)
		assert.Equal(t, tt.want, middleware.BearerToken(req), "header %q", tt.header)
	}
}
