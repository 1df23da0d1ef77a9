package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
)

type HealthHandler struct {
	store repository.Pinger
}

func NewHealthHandler(store repository.Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) error {
	if err := h.store.Ping(r.Context()); err != nil {
		return domain.Internal("Database is unreachable", err)
	}
	return respond(w, http.StatusOK, map[string]string{"status": "OK"}, "Health check passed")
}
