package handlers

import (
	"net/http"

	"github.com/dom/videotube/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	stats, err := h.dashboardService.ChannelStats(r.Context(), user.ID)
	if err != nil {
		return err
	}
	message := "Channel stats fetched successfully"
	if stats.TotalVideos == 0 {
		message = "No videos are there on this channel"
	}
	return respond(w, http.StatusOK, stats, message)
}

func (h *DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(r)
	if err != nil {
		return err
	}
	page, err := pageRequest(r)
	if err != nil {
		return err
	}
	videos, err := h.dashboardService.ChannelVideos(r.Context(), user.ID, page)
	if err != nil {
		return err
	}
	return respond(w, http.StatusOK, videos, "Channel videos fetched successfully")
}
