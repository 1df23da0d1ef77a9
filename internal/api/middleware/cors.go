package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dom/videotube/internal/domain"
)

type corsPolicy struct {
	allowed map[string]struct{}
}

func newCORSPolicy(origins []string) (corsPolicy, error) {
	policy := corsPolicy{allowed: make(map[string]struct{})}
	for _, origin := range origins {
		normalized, err := normalizeOrigin(origin)
		if err != nil {
			return corsPolicy{}, fmt.Errorf("parse origin %q: %w", origin, err)
		}
		if normalized != "" {
			policy.allowed[normalized] = struct{}{}
		}
	}
	return policy, nil
}

func normalizeOrigin(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "", nil
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("origin must include scheme and host")
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(parsed.Scheme), strings.ToLower(parsed.Host)), nil
}

// CORS allows credentialed cross-origin requests from the configured
// origins. Same-origin requests always pass.
func CORS(origins []string, logger *slog.Logger, writeError ErrorWriter) (func(http.Handler) http.Handler, error) {
	policy, err := newCORSPolicy(origins)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !policy.allows(origin, originForRequest(r)) {
				logger.Warn("blocked CORS origin", "origin", origin, "path", r.URL.Path)
				writeError(w, r, domain.Forbidden("Origin not allowed"))
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					w.Header().Set("Access-Control-Allow-Headers", requested)
				} else {
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func (p corsPolicy) allows(origin, requestOrigin string) bool {
	normalized, err := normalizeOrigin(origin)
	if err != nil || normalized == "" {
		return false
	}
	if _, ok := p.allowed[normalized]; ok {
		return true
	}
	return requestOrigin != "" && normalized == requestOrigin
}

func originForRequest(r *http.Request) string {
	host := strings.ToLower(strings.TrimSpace(r.Host))
	if host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, host)
}
