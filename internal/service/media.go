package service

import (
	"context"
	"log/slog"

	"github.com/dom/videotube/internal/logging"
	"github.com/dom/videotube/internal/metrics"
	"github.com/dom/videotube/internal/storage"
)

// media wraps the asset store with metrics and best-effort cleanup.
type media struct {
	store   storage.MediaStorage
	metrics *metrics.Metrics
}

func (m media) upload(ctx context.Context, localPath string) (*storage.Asset, error) {
	asset, err := m.store.Upload(ctx, localPath)
	m.metrics.RecordMedia("upload", err)
	if err != nil {
		logging.FromContext(ctx).Warn("media upload failed", slog.Any("error", err))
		return nil, err
	}
	return asset, nil
}

// remove deletes each non-empty url and reports the first failure.
func (m media) remove(ctx context.Context, urls ...string) error {
	var first error
	for _, url := range urls {
		if url == "" {
			continue
		}
		err := m.store.Delete(ctx, url)
		m.metrics.RecordMedia("delete", err)
		if err != nil {
			logging.FromContext(ctx).Warn("media delete failed", slog.String("url", url), slog.Any("error", err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// discard is remove for compensating actions where the failure is only logged.
func (m media) discard(ctx context.Context, urls ...string) {
	_ = m.remove(ctx, urls...)
}
