package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dom/videotube/internal/api/middleware"
	"github.com/dom/videotube/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathUUID parses a UUID path parameter; label names it in the error.
func pathUUID(r *http.Request, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, domain.BadRequest("Invalid " + label + " id")
	}
	return id, nil
}

func pageRequest(r *http.Request) (domain.PageRequest, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.NewPageRequest(page, limit), nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.BadRequest("Query parameter " + key + " must be an integer")
	}
	return n, nil
}

func currentUser(r *http.Request) (*domain.User, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, domain.Unauthenticated("Unauthorized request")
	}
	return user, nil
}

// jsonDecoder bounds and decodes JSON request bodies.
type jsonDecoder struct {
	limit int64
}

func (d jsonDecoder) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return d.read(w, r, dst, false)
}

// decodeOptional treats an empty body as an empty object.
func (d jsonDecoder) decodeOptional(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return d.read(w, r, dst, true)
}

func (d jsonDecoder) read(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) error {
	if r.Body == nil {
		if optional {
			return nil
		}
		return domain.BadRequest("Request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, d.limit)
	err := json.NewDecoder(body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if optional {
			return nil
		}
		return domain.BadRequest("Request body is required")
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.BadRequest("Request body too large")
		}
		return domain.BadRequest("Invalid request body", err.Error())
	}
}
