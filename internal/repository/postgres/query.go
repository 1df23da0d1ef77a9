package postgres

import (
	"errors"
	"strings"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
	"gorm.io/gorm"
)

// Read queries follow one shape: match (Where on an indexed relationship and
// optional ILIKE pattern), join (exactly one foreign collection per Joins),
// reshape (Select into a declared row type; never the full joined user), and
// for listings paginate.

const (
	joinVideoOwner = "JOIN users AS owners ON owners.id = videos.owner_id"

	videoProjection = `videos.id, videos.video_file, videos.thumbnail, videos.title, videos.description,
		videos.duration, videos.views, videos.is_published, videos.created_at,
		owners.id AS owner_id, owners.username AS owner_username,
		owners.full_name AS owner_full_name, owners.avatar AS owner_avatar,
		(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) AS like_count`

	ownerSummaryProjection = "users.id, users.username, users.full_name, users.avatar"
)

// paginate counts the matched rows of base and scans one page of the
// reshaped rows into R. base must apply only the match and join stages;
// it is called twice so the count never sees the projection.
func paginate[R any](base func() *gorm.DB, projection, order string, page domain.PageRequest) ([]R, int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(page.Offset()) >= total {
		return nil, total, nil
	}

	var rows []R
	err := base().
		Select(projection).
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// pageOf maps a page of rows into their view type.
func pageOf[R, V any](rows []R, total int64, page domain.PageRequest, view func(R) V) domain.Page[V] {
	docs := make([]V, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, view(row))
	}
	return domain.NewPage(docs, page, total)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrConflict
	default:
		return err
	}
}

// rowsAffected turns an update or delete that matched nothing into ErrNotFound.
func rowsAffected(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for ILIKE.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
