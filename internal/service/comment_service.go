package service

import (
	"context"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
)

const msgCommentNotFound = "Comment not found"

type CommentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

func (s *CommentService) List(ctx context.Context, viewerID, videoID uuid.UUID, page domain.PageRequest) (domain.Page[domain.CommentView], error) {
	if _, err := visibleVideo(ctx, s.videos, viewerID, videoID); err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	result, err := s.comments.ListByVideo(ctx, videoID, page)
	if err != nil {
		return domain.Page[domain.CommentView]{}, storeErr(err, "")
	}
	return result, nil
}

func (s *CommentService) Add(ctx context.Context, userID, videoID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.BadRequest("Content is required")
	}
	if _, err := visibleVideo(ctx, s.videos, userID, videoID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{Content: content, VideoID: videoID, OwnerID: userID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, storeErr(err, msgVideoNotFound)
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, userID, commentID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.BadRequest("Content is required")
	}

	comment, err := s.owned(ctx, userID, commentID, "update")
	if err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, storeErr(err, msgCommentNotFound)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, commentID, "delete"); err != nil {
		return err
	}
	return storeErr(s.comments.Delete(ctx, commentID), msgCommentNotFound)
}

func (s *CommentService) owned(ctx context.Context, userID, commentID uuid.UUID, action string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr(err, msgCommentNotFound)
	}
	if comment.OwnerID != userID {
		return nil, domain.Forbidden("You are not allowed to " + action + " this comment")
	}
	return comment, nil
}
