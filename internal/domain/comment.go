package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Content   string    `json:"content" gorm:"not null"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:uuid;index;not null"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Video *Video `json:"-" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Owner *User  `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

type CommentView struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	LikeCount int64        `json:"likeCount"`
	CreatedAt time.Time    `json:"createdAt"`
	Owner     OwnerSummary `json:"owner"`
}
