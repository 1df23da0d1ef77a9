package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/service"
	"github.com/google/uuid"
)

type VideoHandler struct {
	base
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService, cfg *config.Config) *VideoHandler {
	return &VideoHandler{base: newBase(cfg), videoService: videoService}
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	form, err := h.uploads.parse(w, r, "videoFile", "thumbnail")
	if err != nil {
		return err
	}
	defer form.Cleanup()

	var duration float64
	if raw := form.Value("duration"); raw != "" {
		duration, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.BadRequest("Duration must be a number of seconds")
		}
	}

	video, err := h.videoService.Publish(r.Context(), user.ID, service.PublishVideoInput{
		Title:         form.Value("title"),
		Description:   form.Value("description"),
		VideoPath:     form.File("videoFile"),
		ThumbnailPath: form.File("thumbnail"),
		Duration:      duration,
	})
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, video, "Video published successfully")
}

// List accepts query, userId, sortBy and sortType (asc or desc) alongside
// the page parameters.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}

	q := r.URL.Query()
	filter := domain.VideoFilter{
		Query:    q.Get("query"),
		ViewerID: user.ID,
		SortBy:   domain.VideoSort(q.Get("sortBy")),
	}

	switch strings.ToLower(q.Get("sortType")) {
	case "", "desc":
	case "asc":
		filter.Ascending = true
	default:
		return domain.BadRequest("sortType must be asc or desc")
	}

	if raw := q.Get("userId"); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return domain.BadRequest("Invalid user id")
		}
		filter.OwnerID = &ownerID
	}

	videos, err := h.videoService.List(r.Context(), filter, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, videos, "Videos fetched successfully")
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	video, err := h.videoService.Get(r.Context(), user.ID, videoID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, video, "Video fetched successfully")
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	form, err := h.uploads.parse(w, r, "thumbnail")
	if err != nil {
		return err
	}
	defer form.Cleanup()

	video, err := h.videoService.Update(r.Context(), user.ID, videoID, service.UpdateVideoInput{
		Title:         form.Value("title"),
		Description:   form.Value("description"),
		ThumbnailPath: form.File("thumbnail"),
	})
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	if err := h.videoService.Delete(r.Context(), user.ID, videoID); err != nil {
		return err
	}
	return respond(w, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	video, err := h.videoService.TogglePublish(r.Context(), user.ID, videoID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, video, "Publish status toggled successfully")
}
