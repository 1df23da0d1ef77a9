package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

// Toggle deletes the user's like on the target if one exists and creates it
// otherwise. The returned status reflects the state after the toggle.
func (r *likeRepository) Toggle(ctx context.Context, target domain.LikeTarget, targetID, userID uuid.UUID) (domain.LikeStatus, error) {
	var status domain.LikeStatus
	column := target.Column()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(column+" = ? AND liked_by_id = ?", targetID, userID).Delete(&domain.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := &domain.Like{LikedByID: userID}
			switch target {
			case domain.LikeTargetComment:
				like.CommentID = &targetID
			case domain.LikeTargetTweet:
				like.TweetID = &targetID
			default:
				like.VideoID = &targetID
			}
			// A concurrent toggle may have inserted the same like first.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
			status.IsLiked = true
		}

		return tx.Model(&domain.Like{}).Where(column+" = ?", targetID).Count(&status.LikeCount).Error
	})
	if err != nil {
		return domain.LikeStatus{}, translate(err)
	}
	return status, nil
}

func (r *likeRepository) ListLikedVideos(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (domain.Page[domain.VideoView], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&domain.Like{}).
			Where("likes.liked_by_id = ? AND likes.video_id IS NOT NULL", userID).
			Joins("JOIN videos ON videos.id = likes.video_id").
			Where("(videos.is_published = ? OR videos.owner_id = ?)", true, userID).
			Joins(joinVideoOwner)
	}

	rows, total, err := paginate[videoRow](base, videoProjection, "likes.created_at DESC, likes.id", page)
	if err != nil {
		return domain.Page[domain.VideoView]{}, err
	}
	return pageOf(rows, total, page, videoRow.view), nil
}
