package service

import (
	"github.com/dom/videotube/internal/config"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/repository"
	"github.com/dom/videotube/internal/storage"
)

type Services struct {
	Tokens       *TokenService
	Auth         *AuthService
	Video        *VideoService
	Comment      *CommentService
	Like         *LikeService
	Playlist     *PlaylistService
	Subscription *SubscriptionService
	Tweet        *TweetService
	Dashboard    *DashboardService
	Health       repository.Pinger
}

func NewServices(repos *repository.Repositories, store storage.MediaStorage, m *metrics.Metrics, cfg *config.Config) *Services {
	tokens := NewTokenService(repos.User, cfg.Token)
	return &Services{
		Tokens:       tokens,
		Auth:         NewAuthService(repos.User, repos.Video, tokens, store, m, cfg.BcryptCost),
		Video:        NewVideoService(repos.Video, repos.User, store, m),
		Comment:      NewCommentService(repos.Comment, repos.Video),
		Like:         NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video, repos.User),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User),
		Tweet:        NewTweetService(repos.Tweet, repos.User),
		Dashboard:    NewDashboardService(repos.Video),
		Health:       repos.Health,
	}
}
