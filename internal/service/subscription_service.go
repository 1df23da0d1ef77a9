package service

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, users: users}
}

// Toggle subscribes or unsubscribes. The returned subscription is nil when
// the call unsubscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error) {
	if subscriberID == channelID {
		return nil, domain.BadRequest("You cannot subscribe to your own channel")
	}
	if _, err := s.users.GetSanitizedByID(ctx, channelID); err != nil {
		return nil, storeErr(err, "Channel not found")
	}

	sub, err := s.subscriptions.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, storeErr(err, "")
	}
	return sub, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error) {
	if _, err := s.users.GetSanitizedByID(ctx, channelID); err != nil {
		return domain.Page[domain.OwnerSummary]{}, storeErr(err, "Channel not found")
	}
	result, err := s.subscriptions.ListSubscribers(ctx, channelID, page)
	if err != nil {
		return domain.Page[domain.OwnerSummary]{}, storeErr(err, "")
	}
	return result, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error) {
	if _, err := s.users.GetSanitizedByID(ctx, subscriberID); err != nil {
		return domain.Page[domain.OwnerSummary]{}, storeErr(err, "User not found")
	}
	result, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID, page)
	if err != nil {
		return domain.Page[domain.OwnerSummary]{}, storeErr(err, "")
	}
	return result, nil
}
