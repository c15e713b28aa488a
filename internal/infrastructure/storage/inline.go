package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// InlineStore encodes images as base64 data URIs carried inside the product
// document itself. Nothing lives outside the database, so Remove is a no-op.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Store(_ context.Context, data []byte, contentType string) (domain.ImageRef, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	var ref domain.ImageRef
	ref.SetInline(fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)))
	return ref, nil
}

func (s *InlineStore) Remove(_ context.Context, _ domain.ImageRef) error {
	return nil
}
