package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tweetProjection = `tweets.id, tweets.content, tweets.created_at,
	owners.id AS owner_id, owners.username AS owner_username,
	owners.full_name AS owner_full_name, owners.avatar AS owner_avatar,
	(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS like_count`

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *tweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	return translate(r.db.WithContext(ctx).Create(tweet).Error)
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var tweet domain.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(tweet).Error)
}

func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&domain.Tweet{}, "id = ?", id))
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.TweetView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Tweet{}).
			Where("tweets.owner_id = ?", ownerID).
			Joins("JOIN users AS owners ON owners.id = tweets.owner_id")
	}

	rows, total, err := paginate[contentRow](base, tweetProjection, "tweets.created_at DESC, tweets.id", page)
	if err != nil {
		return domain.Page[domain.TweetView]{}, err
	}
	return pageOf(rows, total, page, contentRow.tweet), nil
}
