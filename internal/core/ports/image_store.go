package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// ImageStore converts uploaded image bytes into a storable reference:
// either a retrievable file URL or an inline encoding, depending on the
// implementation. Remove discards a previously stored reference; it must be
// safe to call with either arm active.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType string) (domain.ImageRef, error)
	Remove(ctx context.Context, ref domain.ImageRef) error
}
