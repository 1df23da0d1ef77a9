package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/logging"
)

// Envelope is the success body of every endpoint.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorEnvelope is the failure body of every endpoint.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// HandlerFunc is an endpoint that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to net/http, translating a returned error into the
// failure envelope.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError renders err. Untyped errors and internal causes are logged and
// never shown to the caller.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		derr = domain.Internal("Something went wrong", err)
	}

	status := statusFor(derr.Kind)
	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("kind", derr.Kind.String()), slog.Any("error", err))
	} else {
		logger.Debug("request rejected", slog.String("kind", derr.Kind.String()), slog.String("message", derr.Message))
	}

	details := derr.Errors
	if details == nil {
		details = []string{}
	}
	writeJSON(w, status, ErrorEnvelope{
		StatusCode: status,
		Message:    derr.Message,
		Success:    false,
		Errors:     details,
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthenticated, domain.KindInvalidCredential:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, data interface{}, message string) error {
	if data == nil {
		data = struct{}{}
	}
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("encode response", slog.Any("error", err))
	}
}
