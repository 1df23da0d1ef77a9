package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in migration order.
var Models = []interface{}{
	&domain.User{},
	&domain.Video{},
	&domain.Comment{},
	&domain.Tweet{},
	&domain.Like{},
	&domain.Playlist{},
	&domain.PlaylistVideo{},
	&domain.Subscription{},
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Video:        NewVideoRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Playlist:     NewPlaylistRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Tweet:        NewTweetRepository(db),
		Health:       &pinger{db: db},
	}
}

type pinger struct {
	db *gorm.DB
}

func (p *pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
