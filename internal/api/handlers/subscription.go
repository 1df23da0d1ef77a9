package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	channelID, err := pathUUID(r, "channelId", "channel")
	if err != nil {
		return err
	}
	sub, err := h.subscriptionService.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		return err
	}
	if sub == nil {
		return respond(w, http.StatusOK, map[string]bool{"subscribed": false}, "Unsubscribed successfully")
	}
	return respond(w, http.StatusCreated, sub, "Subscribed successfully")
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) error {
	channelID, err := pathUUID(r, "channelId", "channel")
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	subscribers, err := h.subscriptionService.Subscribers(r.Context(), channelID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) error {
	subscriberID, err := pathUUID(r, "subscriberId", "subscriber")
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	channels, err := h.subscriptionService.SubscribedChannels(r.Context(), subscriberID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
