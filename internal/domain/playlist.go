package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// PlaylistVideo keeps playlist membership ordered by insertion.
type PlaylistVideo struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddedAt    time.Time `gorm:"not null"`

	Playlist *Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
	Video    *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

type PlaylistView struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	VideoCount  int            `json:"videoCount"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Owner       OwnerSummary   `json:"owner"`
	Videos      []VideoSummary `json:"videos"`
}
