package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dom/videotube/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantErrors  []string
	}{
		{name: "bad request", err: domain.BadRequest("All fields are required", "username"), wantStatus: http.StatusBadRequest, wantMessage: "All fields are required", wantErrors: []string{"username"}},
		{name: "unauthenticated", err: domain.Unauthenticated("Invalid access token"), wantStatus: http.StatusUnauthorized, wantMessage: "Invalid access token"},
		{name: "invalid credential", err: domain.InvalidCredential("Invalid user credentials"), wantStatus: http.StatusUnauthorized, wantMessage: "Invalid user credentials"},
		{name: "forbidden", err: domain.Forbidden("nope"), wantStatus: http.StatusForbidden, wantMessage: "nope"},
		{name: "not found", err: domain.NotFound("Video not found"), wantStatus: http.StatusNotFound, wantMessage: "Video not found"},
		{name: "conflict", err: domain.Conflict("taken"), wantStatus: http.StatusConflict, wantMessage: "taken"},
		{name: "method not allowed", err: domain.MethodNotAllowed("Method not allowed"), wantStatus: http.StatusMethodNotAllowed, wantMessage: "Method not allowed"},
		{name: "internal hides cause", err: domain.Internal("Something went wrong", errors.New("pq: connection refused")), wantStatus: http.StatusInternalServerError, wantMessage: "Something went wrong"},
		{name: "untyped error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.NotContains(t, rec.Body.String(), "connection refused")

			var body ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.False(t, body.Success)
			want := tt.wantErrors
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, body.Errors)
		})
	}
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, respond(rec, http.StatusCreated, nil, "created"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"statusCode":201,"data":{},"message":"created","success":true}`, rec.Body.String())
}

func TestHandle(t *testing.T) {
	h := Handle(func(w http.ResponseWriter, r *http.Request) error {
		return domain.NotFound("missing")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPageRequest(t *testing.T) {
	tests := []struct {
		query   string
		want    domain.PageRequest
		wantErr bool
	}{
		{query: "", want: domain.PageRequest{Page: 1, Limit: 10}},
		{query: "page=3&limit=5", want: domain.PageRequest{Page: 3, Limit: 5}},
		{query: "page=0&limit=-2", want: domain.PageRequest{Page: 1, Limit: 10}},
		{query: "limit=1000", want: domain.PageRequest{Page: 1, Limit: domain.MaxLimit}},
		{query: "page=two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := pageRequest(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			if tt.wantErr {
				assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathUUID(t *testing.T) {
	r := chi.NewRouter()
	var got error
	r.Get("/video/{videoId}", func(w http.ResponseWriter, r *http.Request) {
		_, got = pathUUID(r, "videoId", "video")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/video/not-a-uuid", nil))
	require.Error(t, got)
	assert.Equal(t, "bad_request: Invalid video id", got.Error())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/video/6f1c2b1e-3f55-4a47-9d0b-2a9c3f1e7a10", nil))
	assert.NoError(t, got)
}
