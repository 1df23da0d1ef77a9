package service

import (
	"context"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

const msgPlaylistNotFound = "Playlist not found"

type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	users     repository.UserRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, users repository.UserRepository) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, domain.BadRequest("Name and description are required")
	}

	playlist := &domain.Playlist{Name: name, Description: description, OwnerID: ownerID}
	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, storeErr(err, "")
	}
	return playlist, nil
}

// Get returns the playlist with the member videos the viewer may see.
func (s *PlaylistService) Get(ctx context.Context, viewerID, playlistID uuid.UUID) (*domain.PlaylistView, error) {
	view, err := s.playlists.GetView(ctx, playlistID, viewerID)
	if err != nil {
		return nil, storeErr(err, msgPlaylistNotFound)
	}
	return view, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, viewerID, userID uuid.UUID, page domain.PageRequest) (domain.Page[domain.PlaylistView], error) {
	if _, err := s.users.GetSanitizedByID(ctx, userID); err != nil {
		return domain.Page[domain.PlaylistView]{}, storeErr(err, "User not found")
	}
	result, err := s.playlists.ListByOwner(ctx, userID, viewerID, page)
	if err != nil {
		return domain.Page[domain.PlaylistView]{}, storeErr(err, "")
	}
	return result, nil
}

// Update writes the non-empty fields.
func (s *PlaylistService) Update(ctx context.Context, userID, playlistID uuid.UUID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, domain.BadRequest("At least one of name or description is required")
	}

	playlist, err := s.owned(ctx, userID, playlistID, "update")
	if err != nil {
		return nil, err
	}
	if name != "" {
		playlist.Name = name
	}
	if description != "" {
		playlist.Description = description
	}
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return nil, storeErr(err, msgPlaylistNotFound)
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, playlistID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, playlistID, "delete"); err != nil {
		return err
	}
	return storeErr(s.playlists.Delete(ctx, playlistID), msgPlaylistNotFound)
}

// AddVideo is idempotent.
func (s *PlaylistService) AddVideo(ctx context.Context, userID, videoID, playlistID uuid.UUID) (*domain.PlaylistView, error) {
	if _, err := s.owned(ctx, userID, playlistID, "modify"); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videos, userID, videoID); err != nil {
		return nil, err
	}
	if err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, storeErr(err, msgPlaylistNotFound)
	}
	return s.Get(ctx, userID, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, userID, videoID, playlistID uuid.UUID) (*domain.PlaylistView, error) {
	if _, err := s.owned(ctx, userID, playlistID, "modify"); err != nil {
		return nil, err
	}
	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, storeErr(err, msgPlaylistNotFound)
	}
	return s.Get(ctx, userID, playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, userID, playlistID uuid.UUID, action string) (*domain.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err, msgPlaylistNotFound)
	}
	if playlist.OwnerID != userID {
		return nil, domain.Forbidden("You are not allowed to " + action + " this playlist")
	}
	return playlist, nil
}
