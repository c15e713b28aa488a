package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// extByContentType maps the accepted upload types to file extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DiskStore persists uploaded images as uuid-named files under a local
// directory and hands out URLs below baseURL. The router serves the
// directory statically at that prefix.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the uploads directory if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Store writes the image bytes to a fresh uuid-named file and returns its
// serving URL as the active arm of the reference.
func (s *DiskStore) Store(_ context.Context, data []byte, contentType string) (domain.ImageRef, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		ext = ".bin"
	}
	name := uuid.NewString() + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return domain.ImageRef{}, fmt.Errorf("write image: %w", err)
	}

	var ref domain.ImageRef
	ref.SetURL(s.baseURL + "/" + name)
	return ref, nil
}

// Remove deletes the file behind a stored-URL reference. References outside
// this store's prefix (inline encodings, foreign URLs) are ignored; a file
// already gone is not an error.
func (s *DiskStore) Remove(_ context.Context, ref domain.ImageRef) error {
	if ref.URL == "" || !strings.HasPrefix(ref.URL, s.baseURL+"/") {
		return nil
	}
	name := path.Base(ref.URL)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
