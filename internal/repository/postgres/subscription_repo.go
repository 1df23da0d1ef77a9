package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *subscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error) {
	var created *domain.Subscription

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&domain.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		sub := &domain.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
			return err
		}
		created = sub
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// ListSubscribers lists the users subscribed to channelID.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Subscription{}).
			Where("subscriptions.channel_id = ?", channelID).
			Joins("JOIN users ON users.id = subscriptions.subscriber_id")
	}
	return r.listUsers(base, page)
}

// ListSubscribedChannels lists the channels subscriberID follows.
func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Subscription{}).
			Where("subscriptions.subscriber_id = ?", subscriberID).
			Joins("JOIN users ON users.id = subscriptions.channel_id")
	}
	return r.listUsers(base, page)
}

func (r *subscriptionRepository) listUsers(base func() *gorm.DB, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error) {
	rows, total, err := paginate[domain.OwnerSummary](base, ownerSummaryProjection, "subscriptions.created_at DESC, subscriptions.id", page)
	if err != nil {
		return domain.Page[domain.OwnerSummary]{}, err
	}
	return domain.NewPage(rows, page, total), nil
}
