package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const (
	maxPageLimit     = 50
	defaultSortField = "created_at"
)

// allowedSorts is the closed set of fields eligible for ordering. Anything
// outside it silently falls back to created_at, which keeps arbitrary field
// names out of the query layer.
var allowedSorts = map[string]struct{}{
	"name":       {},
	"price":      {},
	"quantity":   {},
	"category":   {},
	"created_at": {},
	"updated_at": {},
}

// ProductService implements the listing query engine and the
// ownership-gated write path.
type ProductService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	images   ports.ImageStore
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, users ports.UserRepository, images ports.ImageStore, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, users: users, images: images, logger: logger}
}

// List translates untrusted query parameters into a bounded, validated plan,
// executes it, and resolves each owner reference to a username. Invalid
// enum values degrade to defaults; inverted price bounds yield an empty
// page, not an error.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) (*ports.ListProductsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	sortField := defaultSortField
	if _, ok := allowedSorts[input.Sort]; ok {
		sortField = input.Sort
	}
	asc := strings.EqualFold(input.Order, "ASC")

	filter := ports.ListProductsFilter{
		Search:   input.Search,
		Category: input.Category,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Sort:     sortField,
		Asc:      asc,
		Skip:     (page - 1) * limit,
		Limit:    limit,
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	authors, err := s.resolveAuthors(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	views := make([]ports.ProductItem, len(items))
	for i, p := range items {
		views[i] = toItem(p, authors[p.OwnerID])
	}

	return &ports.ListProductsResult{
		Items:      views,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Categories returns the sorted distinct category values.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// Get resolves a single listing with the same owner-name join as List.
func (s *ProductService) Get(ctx context.Context, id string) (*ports.ProductItem, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	authors, err := s.resolveAuthors(ctx, []*domain.Product{p})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	item := toItem(p, authors[p.OwnerID])
	return &item, nil
}

// Create persists a new listing owned by the actor. An uploaded image is
// converted through the image store before the write.
func (s *ProductService) Create(ctx context.Context, actor ports.Identity, input ports.CreateProductInput) (*ports.ProductItem, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		OwnerID:     actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if input.Image != nil {
		ref, err := s.images.Store(ctx, input.Image.Data, input.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		p.Image = ref
	}

	created, err := s.products.Create(ctx, p)
	if err != nil {
		// The image was stored first; take it back out so a failed insert
		// leaves no orphaned file behind.
		if !p.Image.IsZero() {
			if rmErr := s.images.Remove(ctx, p.Image); rmErr != nil {
				s.logger.Warn().Err(rmErr).Str("owner_id", actor.ID).Msg("failed to remove image of failed create")
			}
		}
		s.logger.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("owner_id", actor.ID).Str("category", created.Category).Msg("product created")

	item := toItem(created, "")
	if authors, err := s.users.Usernames(ctx, []string{actor.ID}); err == nil {
		item.Author = authors[actor.ID]
	} else {
		s.logger.Warn().Err(err).Str("product_id", created.ID).Msg("failed to resolve author")
	}
	return &item, nil
}

// Update applies a partial update after the owner-or-admin check. A new
// image replaces the previous one; the old stored reference is discarded.
func (s *ProductService) Update(ctx context.Context, actor ports.Identity, id string, input ports.UpdateProductInput) (*ports.ProductItem, error) {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(actor, existing.OwnerID) {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Quantity != nil {
		existing.Quantity = *input.Quantity
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}

	if input.Image != nil {
		ref, err := s.images.Store(ctx, input.Image.Data, input.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		old := existing.Image
		existing.Image = ref
		if !old.IsZero() {
			if err := s.images.Remove(ctx, old); err != nil {
				s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to remove replaced image")
			}
		}
	}

	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Str("actor_id", actor.ID).Msg("product updated")

	// The author name is presentation-only here; a failed lookup degrades to
	// a null author instead of failing the committed update.
	authors, err := s.users.Usernames(ctx, []string{updated.OwnerID})
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to resolve author")
	}
	item := toItem(updated, authors[updated.OwnerID])
	return &item, nil
}

// Delete removes a listing after the owner-or-admin check. Removal is
// immediate and permanent.
func (s *ProductService) Delete(ctx context.Context, actor ports.Identity, id string) error {
	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(actor, existing.OwnerID) {
		return domain.ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if !existing.Image.IsZero() {
		if err := s.images.Remove(ctx, existing.Image); err != nil {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("failed to remove image of deleted product")
		}
	}

	s.logger.Info().Str("product_id", id).Str("actor_id", actor.ID).Msg("product deleted")
	return nil
}

// resolveAuthors maps owner ids to usernames in one lookup. Owners that no
// longer exist are absent from the map; callers render those as null.
func (s *ProductService) resolveAuthors(ctx context.Context, items []*domain.Product) (map[string]string, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.OwnerID]; ok {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ids = append(ids, p.OwnerID)
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	return s.users.Usernames(ctx, ids)
}

func toItem(p *domain.Product, author string) ports.ProductItem {
	return ports.ProductItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		ImageURL:    p.Image.URL,
		ImageBase64: p.Image.Inline,
		OwnerID:     p.OwnerID,
		Author:      author,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
