package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/service"
)

type TweetHandler struct {
	base
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService, cfg *config.Config) *TweetHandler {
	return &TweetHandler{base: newBase(cfg), tweetService: tweetService}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	var req ContentRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	tweet, err := h.tweetService.Create(r.Context(), user.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(w, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathUUID(r, "userId", "user")
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	tweets, err := h.tweetService.ListByUser(r.Context(), userID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	tweetID, err := pathUUID(r, "tweetId", "tweet")
	if err != nil {
		return err
	}
	var req ContentRequest
	if err := h.decoder.decode(w, r, &req); err != nil {
		return err
	}
	tweet, err := h.tweetService.Update(r.Context(), user.ID, tweetID, req.Content)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	tweetID, err := pathUUID(r, "tweetId", "tweet")
	if err != nil {
		return err
	}
	if err := h.tweetService.Delete(r.Context(), user.ID, tweetID); err != nil {
		return err
	}
	return respond(w, http.StatusOK, nil, "Tweet deleted successfully")
}
