package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/service"
)

type PlaylistHandler struct {
	base
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService, cfg *config.Config) *PlaylistHandler {
	return &PlaylistHandler{base: newBase(cfg), playlistService: playlistService}
}

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	var req PlaylistRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	playlist, err := h.playlistService.Create(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	playlistID, err := pathUUID(r, "playlistId", "playlist")
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.Get(r.Context(), user.ID, playlistID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	playlistID, err := pathUUID(r, "playlistId", "playlist")
	if err != nil {
		return err
	}
	var req PlaylistRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	playlist, err := h.playlistService.Update(r.Context(), user.ID, playlistID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	playlistID, err := pathUUID(r, "playlistId", "playlist")
	if err != nil {
		return err
	}
	if err := h.playlistService.Delete(r.Context(), user.ID, playlistID); err != nil {
		return err
	}
	return respond(w, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	playlistID, err := pathUUID(r, "playlistId", "playlist")
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.AddVideo(r.Context(), user.ID, videoID, playlistID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, playlist, "Video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	playlistID, err := pathUUID(r, "playlistId", "playlist")
	if err != nil {
		return err
	}
	playlist, err := h.playlistService.RemoveVideo(r.Context(), user.ID, videoID, playlistID)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, playlist, "Video removed from playlist")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) error {
	viewer, err := currentUser(r)
	if err != nil {
		return err
	}
	userID, err := pathUUID(r, "userId", "user")
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	playlists, err := h.playlistService.ListByUser(r.Context(), viewer.ID, userID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, playlists, "User playlists fetched successfully")
}
