package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *videoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	return translate(r.db.WithContext(ctx).Create(video).Error)
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(video).Error)
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id))
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	return rowsAffected(res)
}

func (r *videoRepository) GetView(ctx context.Context, id uuid.UUID) (*domain.VideoView, error) {
	var row videoRow
	res := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("videos.id = ?", id).
		Joins(joinVideoOwner).
		Select(videoProjection).
		Limit(1).
		Scan(&row)
	if err := rowsAffected(res); err != nil {
		return nil, err
	}
	view := row.view()
	return &view, nil
}

// List matches published videos, plus the viewer's own unpublished ones,
// narrowed by every filter that is set.
func (r *videoRepository) List(ctx context.Context, filter domain.VideoFilter, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&domain.Video{}).
			Where("(videos.is_published = ? OR videos.owner_id = ?)", true, filter.ViewerID)
		if filter.Query != "" {
			q = q.Where("videos.title ILIKE ?", containsPattern(filter.Query))
		}
		if filter.OwnerID != nil {
			q = q.Where("videos.owner_id = ?", *filter.OwnerID)
		}
		return q.Joins(joinVideoOwner)
	}

	rows, total, err := paginate[videoRow](base, videoProjection, videoOrder(filter), page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, err
	}
	return pageOf(rows, total, page, videoRow.view), nil
}

// ListByOwner lists every video of the owner regardless of publish state.
func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Video{}).
			Where("videos.owner_id = ?", ownerID).
			Joins(joinVideoOwner)
	}

	rows, total, err := paginate[videoRow](base, videoProjection, "videos.created_at DESC, videos.id", page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, err
	}
	return pageOf(rows, total, page, videoRow.view), nil
}

func (r *videoRepository) ListAssetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Select("id", "video_file", "thumbnail").
		Where("owner_id = ?", ownerID).
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error) {
	var stats domain.ChannelStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = @owner) AS total_subscribers,
			(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = @owner) AS total_views,
			(SELECT COUNT(*) FROM videos WHERE owner_id = @owner) AS total_videos,
			(SELECT COUNT(*) FROM likes JOIN videos ON videos.id = likes.video_id WHERE videos.owner_id = @owner) AS total_likes`,
		map[string]interface{}{"owner": ownerID}).
		Scan(&stats).Error
	return stats, err
}

func videoOrder(filter domain.VideoFilter) string {
	column := "videos.created_at"
	switch filter.SortBy {
	case domain.VideoSortViews:
		column = "videos.views"
	case domain.VideoSortDuration:
		column = "videos.duration"
	case domain.VideoSortTitle:
		column = "videos.title"
	}
	direction := " DESC"
	if filter.Ascending {
		direction = " ASC"
	}
	return column + direction + ", videos.id"
}
