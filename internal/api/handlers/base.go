package handlers

import "github.com/dom/videotube/internal/config"

// base holds the request limits and cookie settings shared by the handlers.
type base struct {
	decoder jsonDecoder
	uploads uploader
	cookies cookiePolicy
}

func newBase(cfg *config.Config) base {
	return base{
		decoder: jsonDecoder{limit: int64(cfg.JSONBodyLimitKB) << 10},
		uploads: uploader{
			dir:      cfg.Uploads.TempDir,
			maxBytes: int64(cfg.Uploads.MaxUploadMB) << 20,
		},
		cookies: cookiePolicy{
			secure:     cfg.Cookies.Secure,
			accessTTL:  cfg.Token.AccessExpiry,
			refreshTTL: cfg.Token.RefreshExpiry,
		},
	}
}
