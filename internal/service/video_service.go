package service

import (
	"context"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/repository"
	"github.com/dom/videotube/internal/storage"
	"github.com/google/uuid"
)

const msgVideoNotFound = "Video not found"

type VideoService struct {
	videos repository.VideoRepository
	users  repository.UserRepository
	media  media
}

func NewVideoService(videos repository.VideoRepository, users repository.UserRepository, store storage.MediaStorage, m *metrics.Metrics) *VideoService {
	return &VideoService{
		videos: videos,
		users:  users,
		media:  media{store: store, metrics: m},
	}
}

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
	// Duration in seconds, used when the asset store cannot probe the media.
	Duration float64
}

// UpdateVideoInput leaves empty fields unchanged.
type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string
}

// Publish uploads both assets and creates the video. Assets already uploaded
// are deleted again when a later step fails.
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input PublishVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, domain.BadRequest("Title and description are required")
	}
	if input.VideoPath == "" {
		return nil, domain.BadRequest("Video file is required")
	}
	if input.ThumbnailPath == "" {
		return nil, domain.BadRequest("Thumbnail is required")
	}
	if input.Duration < 0 {
		return nil, domain.BadRequest("Duration must not be negative")
	}

	videoAsset, err := s.media.upload(ctx, input.VideoPath)
	if err != nil {
		return nil, domain.Internal("Error while uploading video", err)
	}
	thumbAsset, err := s.media.upload(ctx, input.ThumbnailPath)
	if err != nil {
		s.media.discard(ctx, videoAsset.URL)
		return nil, domain.Internal("Error while uploading thumbnail", err)
	}

	duration := videoAsset.Duration
	if duration == 0 {
		duration = input.Duration
	}

	video := &domain.Video{
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbAsset.URL,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		s.media.discard(ctx, videoAsset.URL, thumbAsset.URL)
		return nil, domain.Internal("Error while publishing video", err)
	}
	return video, nil
}

func (s *VideoService) List(ctx context.Context, filter domain.VideoFilter, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	switch filter.SortBy {
	case "":
		filter.SortBy = domain.VideoSortCreatedAt
	case domain.VideoSortCreatedAt, domain.VideoSortViews, domain.VideoSortDuration, domain.VideoSortTitle:
	default:
		return domain.Page[domain.VideoView]{}, domain.BadRequest("Invalid sortBy value")
	}
	filter.Query = strings.TrimSpace(filter.Query)

	if filter.OwnerID != nil {
		if _, err := s.users.GetSanitizedByID(ctx, *filter.OwnerID); err != nil {
			return domain.Page[domain.VideoView]{}, storeErr(err, "User not found")
		}
	}

	result, err := s.videos.List(ctx, filter, page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, storeErr(err, "")
	}
	return result, nil
}

// Get returns a video and records the view: the view counter is bumped and
// the video moves to the end of the viewer's watch history. Unpublished
// videos are only visible to their owner.
func (s *VideoService) Get(ctx context.Context, viewerID, videoID uuid.UUID) (*domain.VideoView, error) {
	if _, err := visibleVideo(ctx, s.videos, viewerID, videoID); err != nil {
		return nil, err
	}

	if err := s.videos.IncrementViews(ctx, videoID); err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	if err := s.users.RecordWatch(ctx, viewerID, videoID); err != nil {
		return nil, storeErr(err, "User not found")
	}

	view, err := s.videos.GetView(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	return view, nil
}

func (s *VideoService) Update(ctx context.Context, userID, videoID uuid.UUID, input UpdateVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" && description == "" && input.ThumbnailPath == "" {
		return nil, domain.BadRequest("At least one of title, description or thumbnail is required")
	}

	video, err := s.owned(ctx, userID, videoID, "update")
	if err != nil {
		return nil, err
	}

	if title != "" {
		video.Title = title
	}
	if description != "" {
		video.Description = description
	}

	previousThumb := ""
	if input.ThumbnailPath != "" {
		asset, err := s.media.upload(ctx, input.ThumbnailPath)
		if err != nil {
			return nil, domain.Internal("Error while uploading thumbnail", err)
		}
		previousThumb = video.Thumbnail
		video.Thumbnail = asset.URL
	}

	if err := s.videos.Update(ctx, video); err != nil {
		if previousThumb != "" {
			s.media.discard(ctx, video.Thumbnail)
		}
		return nil, storeErr(err, msgVideoNotFound)
	}
	s.media.discard(ctx, previousThumb)
	return video, nil
}

// Delete removes the assets first. If the asset store fails the row is kept
// so the assets are never orphaned.
func (s *VideoService) Delete(ctx context.Context, userID, videoID uuid.UUID) error {
	video, err := s.owned(ctx, userID, videoID, "delete")
	if err != nil {
		return err
	}

	if err := s.media.remove(ctx, video.VideoFile, video.Thumbnail); err != nil {
		return domain.Internal("Error while deleting video assets", err)
	}
	return storeErr(s.videos.Delete(ctx, videoID), msgVideoNotFound)
}

func (s *VideoService) TogglePublish(ctx context.Context, userID, videoID uuid.UUID) (*domain.Video, error) {
	video, err := s.owned(ctx, userID, videoID, "modify")
	if err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	if err := s.videos.Update(ctx, video); err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	return video, nil
}

// visibleVideo loads a video the viewer may see. Another user's unpublished
// video is reported as missing.
func visibleVideo(ctx context.Context, videos repository.VideoRepository, viewerID, videoID uuid.UUID) (*domain.Video, error) {
	video, err := videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	if !video.VisibleTo(viewerID) {
		return nil, domain.NotFound(msgVideoNotFound)
	}
	return video, nil
}

func (s *VideoService) owned(ctx context.Context, userID, videoID uuid.UUID, action string) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	if video.OwnerID != userID {
		return nil, domain.Forbidden("You are not allowed to " + action + " this video")
	}
	return video, nil
}
