package ports

import (
	"context"
	"time"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// Identity is the authenticated actor extracted from a bearer token.
type Identity struct {
	ID    string
	Email string
	Role  domain.Role
}

// ListProductsInput carries the untrusted query parameters for the list
// endpoint. The service clamps pagination, gates the sort field against the
// allow-list and degrades invalid enums to defaults instead of failing.
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Sort     string
	Order    string
	MinPrice *float64
	MaxPrice *float64
}

// ImageUpload is the raw content of an uploaded product image.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// CreateProductInput carries all data needed to create a listing.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	Image       *ImageUpload // optional
}

// UpdateProductInput carries a partial update: nil fields retain their
// previous values.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int
	Category    *string
	Image       *ImageUpload // optional; replaces and invalidates the old image
}

// ProductItem is the read view of a listing, with the owner's username
// resolved at query time. Author is empty when the owner no longer exists.
type ProductItem struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	ImageURL    string
	ImageBase64 string
	OwnerID     string
	Author      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListProductsResult is returned by List.
type ListProductsResult struct {
	Items      []ProductItem
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines the listing use-cases: the public query engine and
// the ownership-gated write path.
type ProductService interface {
	List(ctx context.Context, input ListProductsInput) (*ListProductsResult, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*ProductItem, error)
	Create(ctx context.Context, actor Identity, input CreateProductInput) (*ProductItem, error)
	Update(ctx context.Context, actor Identity, id string, input UpdateProductInput) (*ProductItem, error)
	Delete(ctx context.Context, actor Identity, id string) error
}
