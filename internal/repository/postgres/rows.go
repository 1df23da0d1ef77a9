package postgres

import (
	"time"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
)

// Flat scan targets for the reshape stage. Columns prefixed owner_ come
// from the aliased owners join.

type videoRow struct {
	ID            uuid.UUID
	VideoFile     string
	Thumbnail     string
	Title         string
	Description   string
	Duration      float64
	Views         int64
	IsPublished   bool
	LikeCount     int64
	CreatedAt     time.Time
	OwnerID       uuid.UUID
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r videoRow) view() domain.VideoView {
	return domain.VideoView{
		ID:          r.ID,
		VideoFile:   r.VideoFile,
		Thumbnail:   r.Thumbnail,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		LikeCount:   r.LikeCount,
		CreatedAt:   r.CreatedAt,
		Owner: domain.OwnerSummary{
			ID:       r.OwnerID,
			Username: r.OwnerUsername,
			FullName: r.OwnerFullName,
			Avatar:   r.OwnerAvatar,
		},
	}
}

type contentRow struct {
	ID            uuid.UUID
	Content       string
	LikeCount     int64
	CreatedAt     time.Time
	OwnerID       uuid.UUID
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r contentRow) owner() domain.OwnerSummary {
	return domain.OwnerSummary{
		ID:       r.OwnerID,
		Username: r.OwnerUsername,
		FullName: r.OwnerFullName,
		Avatar:   r.OwnerAvatar,
	}
}

func (r contentRow) comment() domain.CommentView {
	return domain.CommentView{ID: r.ID, Content: r.Content, LikeCount: r.LikeCount, CreatedAt: r.CreatedAt, Owner: r.owner()}
}

func (r contentRow) tweet() domain.TweetView {
	return domain.TweetView{ID: r.ID, Content: r.Content, LikeCount: r.LikeCount, CreatedAt: r.CreatedAt, Owner: r.owner()}
}

type playlistRow struct {
	ID            uuid.UUID
	Name          string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerID       uuid.UUID
	OwnerUsername string
	OwnerFullName string
	OwnerAvatar   string
}

func (r playlistRow) view() domain.PlaylistView {
	return domain.PlaylistView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Owner: domain.OwnerSummary{
			ID:       r.OwnerID,
			Username: r.OwnerUsername,
			FullName: r.OwnerFullName,
			Avatar:   r.OwnerAvatar,
		},
		Videos: []domain.VideoSummary{},
	}
}

// withVideos attaches the member videos and sets the derived count.
func withVideos(view domain.PlaylistView, videos []domain.VideoSummary) domain.PlaylistView {
	if videos != nil {
		view.Videos = videos
	}
	view.VideoCount = len(view.Videos)
	return view
}

type playlistVideoRow struct {
	PlaylistID  uuid.UUID
	ID          uuid.UUID
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64
	Views       int64
}

func (r playlistVideoRow) summary() domain.VideoSummary {
	return domain.VideoSummary{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		VideoFile:   r.VideoFile,
		Thumbnail:   r.Thumbnail,
		Duration:    r.Duration,
		Views:       r.Views,
	}
}
