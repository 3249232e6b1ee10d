package model

import (
	"context"
	"io"
)

// AssetStorage stores binary image assets for catalog entries.
type AssetStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
