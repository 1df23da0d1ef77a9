package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dom/videotube/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_KeyFor(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		url     string
		want    string
	}{
		{name: "with base url", baseURL: "https://cdn.test/bucket", url: "https://cdn.test/bucket/media/a.png", want: "media/a.png"},
		{name: "bare key", url: "media/a.png", want: "media/a.png"},
		{name: "empty", baseURL: "https://cdn.test", url: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &S3Storage{baseURL: tt.baseURL}
			assert.Equal(t, tt.want, s.keyFor(tt.url))
			if tt.want != "" {
				assert.Equal(t, tt.url, s.urlFor(tt.want))
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.StorageConfig
		wantEndpoint string
		wantPath     bool
	}{
		{name: "aws default", cfg: config.StorageConfig{Region: "us-east-1"}},
		{name: "custom endpoint path style", cfg: config.StorageConfig{Endpoint: " http://minio:9000 ", PathStyle: true}, wantEndpoint: "http://minio:9000", wantPath: true},
		{name: "custom endpoint virtual hosted", cfg: config.StorageConfig{Endpoint: "https://r2.test"}, wantEndpoint: "https://r2.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o s3.Options
			clientOptions(tt.cfg)(&o)
			if tt.wantEndpoint == "" {
				assert.Nil(t, o.BaseEndpoint)
			} else {
				require.NotNil(t, o.BaseEndpoint)
				assert.Equal(t, tt.wantEndpoint, *o.BaseEndpoint)
			}
			assert.Equal(t, tt.wantPath, o.UsePathStyle)
		})
	}
}

func TestPartSizeBytes(t *testing.T) {
	assert.Equal(t, int64(manager.MinUploadPartSize), partSizeBytes(0))
	assert.Equal(t, int64(16<<20), partSizeBytes(16))
}

func writeTemp(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("content"), 0o600))
	return p
}

func TestMemory_UploadRemovesLocalFile(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := NewMemory()
		p := writeTemp(t, "avatar.png")

		asset, err := m.Upload(ctx, p)
		require.NoError(t, err)
		assert.True(t, m.Has(asset.URL))
		assert.NoFileExists(t, p)

		require.NoError(t, m.Delete(ctx, asset.URL))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("failure", func(t *testing.T) {
		m := NewMemory()
		m.FailUploads = true
		p := writeTemp(t, "video.mp4")

		_, err := m.Upload(ctx, p)
		require.Error(t, err)
		assert.NoFileExists(t, p)
	})

	t.Run("no file", func(t *testing.T) {
		_, err := NewMemory().Upload(ctx, "")
		assert.ErrorIs(t, err, ErrNoFile)
	})
}
