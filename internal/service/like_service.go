package service

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

type LikeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	tweets   repository.TweetRepository
}

func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	tweets repository.TweetRepository,
) *LikeService {
	return &LikeService{likes: likes, videos: videos, comments: comments, tweets: tweets}
}

// Toggle flips the user's like on the target, which must exist.
func (s *LikeService) Toggle(ctx context.Context, userID uuid.UUID, target domain.LikeTarget, targetID uuid.UUID) (domain.LikeStatus, error) {
	if err := s.targetExists(ctx, userID, target, targetID); err != nil {
		return domain.LikeStatus{}, err
	}
	status, err := s.likes.Toggle(ctx, target, targetID, userID)
	if err != nil {
		return domain.LikeStatus{}, storeErr(err, "")
	}
	return status, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	result, err := s.likes.ListLikedVideos(ctx, userID, page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, storeErr(err, "")
	}
	return result, nil
}

// targetExists also hides other users' unpublished videos.
func (s *LikeService) targetExists(ctx context.Context, userID uuid.UUID, target domain.LikeTarget, id uuid.UUID) error {
	var err error
	switch target {
	case domain.LikeTargetVideo:
		_, err = visibleVideo(ctx, s.videos, userID, id)
		return err
	case domain.LikeTargetComment:
		_, err = s.comments.GetByID(ctx, id)
		return storeErr(err, msgCommentNotFound)
	case domain.LikeTargetTweet:
		_, err = s.tweets.GetByID(ctx, id)
		return storeErr(err, msgTweetNotFound)
	default:
		return domain.BadRequest("Unknown like target")
	}
}
