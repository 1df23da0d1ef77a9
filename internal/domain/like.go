package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget names what a like points at. Exactly one of the target columns
// of a Like is set.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

type Like struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID   *uuid.UUID `json:"videoId,omitempty" gorm:"type:uuid;uniqueIndex:idx_like_video"`
	CommentID *uuid.UUID `json:"commentId,omitempty" gorm:"type:uuid;uniqueIndex:idx_like_comment"`
	TweetID   *uuid.UUID `json:"tweetId,omitempty" gorm:"type:uuid;uniqueIndex:idx_like_tweet"`
	LikedByID uuid.UUID  `json:"likedById" gorm:"type:uuid;not null;uniqueIndex:idx_like_video;uniqueIndex:idx_like_comment;uniqueIndex:idx_like_tweet"`
	CreatedAt time.Time  `json:"createdAt"`

	Video   *Video   `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Comment *Comment `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	Tweet   *Tweet   `json:"-" gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE"`
	LikedBy *User    `json:"-" gorm:"foreignKey:LikedByID;constraint:OnDelete:CASCADE"`
}

// Column returns the likes column holding the target identifier.
func (t LikeTarget) Column() string {
	switch t {
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetTweet:
		return "tweet_id"
	default:
		return "video_id"
	}
}

// LikeStatus is the state after a toggle.
type LikeStatus struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}
