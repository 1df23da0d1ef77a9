package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const commentProjection = `comments.id, comments.content, comments.created_at,
	owners.id AS owner_id, owners.username AS owner_username,
	owners.full_name AS owner_full_name, owners.avatar AS owner_avatar,
	(SELECT COUNT(*) FROM likes WHERE likes.comment_id = comments.id) AS like_count`

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return translate(r.db.WithContext(ctx).Create(comment).Error)
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("Video", "Owner").Save(comment).Error)
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id))
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page domain.PageRequest) (domain.Page[domain.CommentView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Comment{}).
			Where("comments.video_id = ?", videoID).
			Joins("JOIN users AS owners ON owners.id = comments.owner_id")
	}

	rows, total, err := paginate[contentRow](base, commentProjection, "comments.created_at DESC, comments.id", page)
	if err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	return pageOf(rows, total, page, contentRow.comment), nil
}
