package domain

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoFile   string    `json:"videoFile" gorm:"not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"not null"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Duration    float64   `json:"duration" gorm:"not null;default:0"`
	Views       int64     `json:"views" gorm:"not null;default:0"`
	IsPublished bool      `json:"isPublished" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// VisibleTo reports whether viewerID may see the video. Unpublished videos
// are visible to their owner only.
func (v *Video) VisibleTo(viewerID uuid.UUID) bool {
	return v.IsPublished || v.OwnerID == viewerID
}

// VideoView is a video joined with its owner.
type VideoView struct {
	ID          uuid.UUID    `json:"id"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	LikeCount   int64        `json:"likeCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	Owner       OwnerSummary `json:"owner"`
}

// VideoSummary is the projection of a video nested inside a playlist.
type VideoSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
}

// VideoSort names the columns a video listing may be ordered by.
type VideoSort string

const (
	VideoSortCreatedAt VideoSort = "createdAt"
	VideoSortViews     VideoSort = "views"
	VideoSortDuration  VideoSort = "duration"
	VideoSortTitle     VideoSort = "title"
)

// VideoFilter is the match stage of the video listing.
type VideoFilter struct {
	Query     string
	OwnerID   *uuid.UUID
	ViewerID  uuid.UUID
	SortBy    VideoSort
	Ascending bool
}

// ChannelStats aggregates a channel's totals for the dashboard.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalLikes       int64 `json:"totalLikes"`
}
