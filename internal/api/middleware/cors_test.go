package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forbidWriter(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusForbidden)
}

func TestCORS(t *testing.T) {
	mw, err := CORS([]string{"https://App.Example.com/"}, slog.New(slog.NewTextHandler(io.Discard, nil)), forbidWriter)
	require.NoError(t, err)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		method     string
		origin     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{name: "no origin", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "allowed origin", method: http.MethodGet, origin: "https://app.example.com", wantStatus: http.StatusOK, wantAllow: "https://app.example.com"},
		{name: "same origin", method: http.MethodGet, origin: "http://api.test", wantStatus: http.StatusOK, wantAllow: "http://api.test"},
		{name: "blocked origin", method: http.MethodGet, origin: "https://evil.test", wantStatus: http.StatusForbidden},
		{name: "preflight", method: http.MethodOptions, origin: "https://app.example.com", preflight: true, wantStatus: http.StatusNoContent, wantAllow: "https://app.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://api.test/api/v1/healthcheck", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllow != "" {
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

func TestCORS_InvalidOrigin(t *testing.T) {
	_, err := CORS([]string{"not-a-url"}, slog.Default(), forbidWriter)
	assert.Error(t, err)
}
