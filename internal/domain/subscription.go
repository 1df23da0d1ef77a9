package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records SubscriberID following the channel ChannelID. Both
// sides are users.
type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_subscription_pair"`
	ChannelID    uuid.UUID `json:"channelId" gorm:"type:uuid;not null;index;uniqueIndex:idx_subscription_pair"`
	CreatedAt    time.Time `json:"createdAt"`

	Subscriber *User `json:"-" gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Channel    *User `json:"-" gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}
