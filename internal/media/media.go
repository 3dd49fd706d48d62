// Package media integrates the third-party image host.
package media

import (
	"context"
	"io"
)

// Asset is a hosted image
type Asset struct {
	URL     string
	AssetID string
}

// Host uploads and deletes hosted images. Delete is best-effort: callers log
// and swallow its errors rather than failing the primary operation.
type Host interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error)
	Delete(ctx context.Context, assetID string) error
}
