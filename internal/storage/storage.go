package storage

import (
	"context"
	"errors"
)

// ErrNoFile is returned when an upload is attempted without a local file.
var ErrNoFile = errors.New("storage: no local file")

// Asset is a stored media object. Duration is zero when the store cannot
// probe the media.
type Asset struct {
	URL      string
	Duration float64
}

// MediaStorage moves uploaded files to durable storage. Upload always removes
// the local file, whether or not the upload succeeded.
type MediaStorage interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, url string) error
}
