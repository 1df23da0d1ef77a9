package postgres

import (
	"context"
	"time"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const playlistProjection = `playlists.id, playlists.name, playlists.description,
	playlists.created_at, playlists.updated_at,
	owners.id AS owner_id, owners.username AS owner_username,
	owners.full_name AS owner_full_name, owners.avatar AS owner_avatar`

const joinPlaylistOwner = "JOIN users AS owners ON owners.id = playlists.owner_id"

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *playlistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return translate(r.db.WithContext(ctx).Create(playlist).Error)
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(playlist).Error)
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&domain.Playlist{}, "id = ?", id))
}

// AddVideo is idempotent; adding a video already in the playlist is a no-op.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	entry := &domain.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, AddedAt: time.Now()}
	err := r.db.WithContext(ctx).
		Omit("Playlist", "Video").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
	if err != nil {
		return translate(err)
	}
	return r.touch(ctx, playlistID)
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&domain.PlaylistVideo{}).Error
	if err != nil {
		return err
	}
	return r.touch(ctx, playlistID)
}

func (r *playlistRepository) touch(ctx context.Context, playlistID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Playlist{}).
		Where("id = ?", playlistID).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r *playlistRepository) GetView(ctx context.Context, id, viewerID uuid.UUID) (*domain.PlaylistView, error) {
	var row playlistRow
	res := r.db.WithContext(ctx).
		Model(&domain.Playlist{}).
		Where("playlists.id = ?", id).
		Joins(joinPlaylistOwner).
		Select(playlistProjection).
		Limit(1).
		Scan(&row)
	if err := rowsAffected(res); err != nil {
		return nil, err
	}

	videos, err := r.videosOf(ctx, viewerID, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	view := withVideos(row.view(), videos[id])
	return &view, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.PlaylistView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Playlist{}).
			Where("playlists.owner_id = ?", ownerID).
			Joins(joinPlaylistOwner)
	}

	rows, total, err := paginate[playlistRow](base, playlistProjection, "playlists.updated_at DESC, playlists.id", page)
	if err != nil {
		return domain.Page[domain.PlaylistView]{}, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	videos, err := r.videosOf(ctx, viewerID, ids)
	if err != nil {
		return domain.Page[domain.PlaylistView]{}, err
	}

	return pageOf(rows, total, page, func(row playlistRow) domain.PlaylistView {
		return withVideos(row.view(), videos[row.ID])
	}), nil
}

// videosOf loads the member videos of each playlist in insertion order,
// skipping unpublished videos that viewerID does not own.
func (r *playlistRepository) videosOf(ctx context.Context, viewerID uuid.UUID, playlistIDs []uuid.UUID) (map[uuid.UUID][]domain.VideoSummary, error) {
	out := make(map[uuid.UUID][]domain.VideoSummary, len(playlistIDs))
	if len(playlistIDs) == 0 {
		return out, nil
	}

	var rows []playlistVideoRow
	err := r.db.WithContext(ctx).
		Model(&domain.PlaylistVideo{}).
		Where("playlist_videos.playlist_id IN ?", playlistIDs).
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Where("(videos.is_published = ? OR videos.owner_id = ?)", true, viewerID).
		Select(`playlist_videos.playlist_id, videos.id, videos.title, videos.description,
			videos.video_file, videos.thumbnail, videos.duration, videos.views`).
		Order("playlist_videos.added_at, videos.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.PlaylistID] = append(out[row.PlaylistID], row.summary())
	}
	return out, nil
}
