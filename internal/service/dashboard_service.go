package service

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

type DashboardService struct {
	videos repository.VideoRepository
}

func NewDashboardService(videos repository.VideoRepository) *DashboardService {
	return &DashboardService{videos: videos}
}

// ChannelStats totals the channel. TotalLikes counts likes received on the
// channel's videos.
func (s *DashboardService) ChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error) {
	stats, err := s.videos.GetChannelStats(ctx, ownerID)
	if err != nil {
		return domain.ChannelStats{}, storeErr(err, "")
	}
	return stats, nil
}

func (s *DashboardService) ChannelVideos(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	result, err := s.videos.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, storeErr(err, "")
	}
	return result, nil
}
