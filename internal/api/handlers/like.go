package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) error {
	return h.toggle(w, r, domain.LikeTargetVideo, "videoId")
}

func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) error {
	return h.toggle(w, r, domain.LikeTargetComment, "commentId")
}

func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) error {
	return h.toggle(w, r, domain.LikeTargetTweet, "tweetId")
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target domain.LikeTarget, param string) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	targetID, err := pathUUID(r, param, string(target))
	if err != nil {
		return err
	}
	status, err := h.likeService.Toggle(r.Context(), user.ID, target, targetID)
	if err != nil {
		return err
	}
	message := "Like removed"
	if status.IsLiked {
		message = "Liked successfully"
	}
	return respond(w, http.StatusOK, status, message)
}

func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	videos, err := h.likeService.LikedVideos(r.Context(), user.ID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, videos, "Liked videos fetched successfully")
}
