package repository

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
)

// UserRepository is the credential store plus the user-side read queries.
// GetByID and GetByLogin load the full record including the password hash
// and refresh token; every other read projects them out.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetSanitizedByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLogin(ctx context.Context, username, email string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateDetails(ctx context.Context, id uuid.UUID, fullName, email string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) error
	RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*domain.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]domain.VideoView, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	GetView(ctx context.Context, id uuid.UUID) (*domain.VideoView, error)
	List(ctx context.Context, filter domain.VideoFilter, page domain.PageRequest) (domain.Page[domain.VideoView], error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error)
	ListAssetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error)
	GetChannelStats(ctx context.Context, ownerID uuid.UUID) (domain.ChannelStats, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, page domain.PageRequest) (domain.Page[domain.CommentView], error)
}

type LikeRepository interface {
	Toggle(ctx context.Context, target domain.LikeTarget, targetID, userID uuid.UUID) (domain.LikeStatus, error)
	ListLikedVideos(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	// GetView and ListByOwner only nest the videos viewerID may see.
	GetView(ctx context.Context, id, viewerID uuid.UUID) (*domain.PlaylistView, error)
	ListByOwner(ctx context.Context, ownerID, viewerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.PlaylistView], error)
}

type SubscriptionRepository interface {
	// Toggle removes the subscription if present and creates it otherwise.
	// The returned subscription is nil when the call unsubscribed.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page domain.PageRequest) (domain.Page[domain.OwnerSummary], error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) (domain.Page[domain.TweetView], error)
}

// Pinger reports store liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	Comment      CommentRepository
	Like         LikeRepository
	Playlist     PlaylistRepository
	Subscription SubscriptionRepository
	Tweet        TweetRepository
	Health       Pinger
}
