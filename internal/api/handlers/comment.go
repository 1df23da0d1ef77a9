package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/service"
)

type CommentHandler struct {
	base
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService, cfg *config.Config) *CommentHandler {
	return &CommentHandler{base: newBase(cfg), commentService: commentService}
}

type ContentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	comments, err := h.commentService.List(r.Context(), user.ID, videoID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, comments, "Comments fetched successfully")
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	videoID, err := pathUUID(r, "videoId", "video")
	if err != nil {
		return err
	}
	var req ContentRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	comment, err := h.commentService.Add(r.Context(), user.ID, videoID, req.Content)
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	commentID, err := pathUUID(r, "commentId", "comment")
	if err != nil {
		return err
	}
	var req ContentRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	comment, err := h.commentService.Update(r.Context(), user.ID, commentID, req.Content)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	commentID, err := pathUUID(r, "commentId", "comment")
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(r.Context(), user.ID, commentID); err != nil {
		return err
	}
	return respond(w, http.StatusOK, nil, "Comment deleted successfully")
}
