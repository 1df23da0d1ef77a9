package handlers

import (
	"net/http"
	"time"

	"github.com/dom/videotube/internal/api/middleware"
	"github.com/dom/videotube/internal/service"
)

// cookiePolicy sets and clears the token cookies. Both are http-only.
type cookiePolicy struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (p cookiePolicy) setTokens(w http.ResponseWriter, tokens service.TokenPair) {
	p.set(w, middleware.AccessTokenCookie, tokens.AccessToken, p.accessTTL)
	p.set(w, middleware.RefreshTokenCookie, tokens.RefreshToken, p.refreshTTL)
}

func (p cookiePolicy) clearTokens(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0).UTC(),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   p.secure,
		})
	}
}

func (p cookiePolicy) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl).UTC(),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   p.secure,
	})
}
