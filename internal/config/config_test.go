package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(*testing.T, *Config)
	}{
		{
			name: "defaults with required secrets",
			env: map[string]string{
				"ACCESS_TOKEN_SECRET":  "access",
				"REFRESH_TOKEN_SECRET": "refresh",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8000", cfg.Port)
				assert.Equal(t, 15*time.Minute, cfg.Token.AccessExpiry)
				assert.Equal(t, 240*time.Hour, cfg.Token.RefreshExpiry)
				assert.True(t, cfg.Cookies.Secure)
				assert.Empty(t, cfg.CORSOrigins)
				assert.False(t, cfg.Storage.PathStyle)
				assert.Equal(t, 8, cfg.Storage.PartSizeMB)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"ACCESS_TOKEN_SECRET":  "access",
				"REFRESH_TOKEN_SECRET": "refresh",
				"ACCESS_TOKEN_EXPIRY":  "1h",
				"COOKIE_SECURE":        "false",
				"CORS_ORIGIN":          "http://a.test, http://b.test",
				"S3_ENDPOINT":          "http://minio:9000",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, time.Hour, cfg.Token.AccessExpiry)
				assert.False(t, cfg.Cookies.Secure)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
				assert.Equal(t, "http://minio:9000", cfg.Storage.Endpoint)
				assert.True(t, cfg.Storage.PathStyle, "a custom endpoint defaults to path style")
			},
		},
		{
			name:    "missing access secret",
			env:     map[string]string{"REFRESH_TOKEN_SECRET": "refresh"},
			wantErr: "ACCESS_TOKEN_SECRET",
		},
		{
			name:    "missing refresh secret",
			env:     map[string]string{"ACCESS_TOKEN_SECRET": "access"},
			wantErr: "REFRESH_TOKEN_SECRET",
		},
		{
			name: "identical secrets",
			env: map[string]string{
				"ACCESS_TOKEN_SECRET":  "same",
				"REFRESH_TOKEN_SECRET": "same",
			},
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET", "ACCESS_TOKEN_EXPIRY", "COOKIE_SECURE", "CORS_ORIGIN"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
