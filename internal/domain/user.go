package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is an account and, at the same time, the channel its videos are
// published under. RefreshToken holds the single active refresh token; an
// empty value means no session is open.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string         `json:"fullName" gorm:"index;not null"`
	Avatar       string         `json:"avatar" gorm:"not null"`
	CoverImage   string         `json:"coverImage"`
	PasswordHash string         `json:"-" gorm:"not null"`
	RefreshToken string         `json:"-" gorm:"not null;default:''"`
	WatchHistory datatypes.JSON `json:"-" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// NormalizeHandle lowercases and trims a username or email.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OwnerSummary is the public projection of a user embedded in joined results.
type OwnerSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

// ChannelProfile is the public channel page of a user.
type ChannelProfile struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Avatar            string    `json:"avatar"`
	CoverImage        string    `json:"coverImage"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}
