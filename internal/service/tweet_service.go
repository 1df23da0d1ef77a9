package service

import (
	"context"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

const msgTweetNotFound = "Tweet not found"

type TweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
}

func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func (s *TweetService) Create(ctx context.Context, userID uuid.UUID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.BadRequest("Content is required")
	}
	tweet := &domain.Tweet{Content: content, OwnerID: userID}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, storeErr(err, "")
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (domain.Page[domain.TweetView], error) {
	if _, err := s.users.GetSanitizedByID(ctx, userID); err != nil {
		return domain.Page[domain.TweetView]{}, storeErr(err, "User not found")
	}
	result, err := s.tweets.ListByOwner(ctx, userID, page)
	if err != nil {
		return domain.Page[domain.TweetView]{}, storeErr(err, "")
	}
	return result, nil
}

func (s *TweetService) Update(ctx context.Context, userID, tweetID uuid.UUID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.BadRequest("Content is required")
	}
	tweet, err := s.owned(ctx, userID, tweetID, "update")
	if err != nil {
		return nil, err
	}
	tweet.Content = content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, storeErr(err, msgTweetNotFound)
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, tweetID, "delete"); err != nil {
		return err
	}
	return storeErr(s.tweets.Delete(ctx, tweetID), msgTweetNotFound)
}

func (s *TweetService) owned(ctx context.Context, userID, tweetID uuid.UUID, action string) (*domain.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, storeErr(err, msgTweetNotFound)
	}
	if tweet.OwnerID != userID {
		return nil, domain.Forbidden("You are not allowed to " + action + " this tweet")
	}
	return tweet, nil
}
