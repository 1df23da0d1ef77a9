package postgres

import (
	"context"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetSanitizedByID loads a user without the password hash or refresh token.
func (r *userRepository) GetSanitizedByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Omit("password_hash", "refresh_token").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByLogin matches on whichever of username and email is non-empty. When
// both are given either may match.
func (r *userRepository) GetByLogin(ctx context.Context, username, email string) (*domain.User, error) {
	q := r.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		return nil, repository.ErrNotFound
	}

	var user domain.User
	if err := q.First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// SetRefreshToken overwrites the stored refresh token in a single write.
// Concurrent writers race and the last one wins.
func (r *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", token)
	return rowsAffected(res)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	return rowsAffected(res)
}

// UpdateDetails writes the non-empty fields only.
func (r *userRepository) UpdateDetails(ctx context.Context, id uuid.UUID, fullName, email string) error {
	updates := map[string]interface{}{}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if email != "" {
		updates["email"] = email
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(updates)
	return rowsAffected(res)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("avatar", url)
	return rowsAffected(res)
}

func (r *userRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("cover_image", url)
	return rowsAffected(res)
}

// RecordWatch moves videoID to the end of the user's watch history, removing
// any earlier occurrence.
func (r *userRepository) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	id := videoID.String()
	res := r.db.WithContext(ctx).Exec(`
		UPDATE users SET watch_history = (
			SELECT COALESCE(jsonb_agg(elem ORDER BY pos), '[]'::jsonb)
			FROM jsonb_array_elements(users.watch_history) WITH ORDINALITY AS wh(elem, pos)
			WHERE elem <> to_jsonb(?::text)
		) || jsonb_build_array(?::text)
		WHERE id = ?`, id, id, userID)
	return rowsAffected(res)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return rowsAffected(r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id))
}

func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	var profile domain.ChannelProfile
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select(`users.id, users.username, users.full_name, users.email, users.avatar, users.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = users.id) AS subscriber_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = users.id) AS subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = users.id AND s.subscriber_id = ?) AS is_subscribed`,
			viewerID).
		Where("users.username = ?", username).
		Limit(1).
		Scan(&profile)
	if err := rowsAffected(res); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetWatchHistory returns the watched videos in watch order, each joined with
// its owner. Videos since unpublished by someone else are left out.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]domain.VideoView, error) {
	var rows []videoRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+videoProjection+`
		FROM users AS viewer
		CROSS JOIN LATERAL jsonb_array_elements_text(viewer.watch_history) WITH ORDINALITY AS wh(video_id, pos)
		JOIN videos ON videos.id = wh.video_id::uuid
		`+joinVideoOwner+`
		WHERE viewer.id = ? AND (videos.is_published OR videos.owner_id = viewer.id)
		ORDER BY wh.pos`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]domain.VideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}
	return views, nil
}
