package handler

import (
	"github.com/markethub/marketplace-api/internal/core/ports"
)

func toProductResponse(item ports.ProductItem) productResponse {
	resp := productResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Quantity:    item.Quantity,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		ImageBase64: item.ImageBase64,
		UserID:      item.OwnerID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.Author != "" {
		author := item.Author
		resp.Author = &author
	}
	return resp
}

func toListResponse(r *ports.ListProductsResult) listProductsResponse {
	items := make([]productResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = toProductResponse(item)
	}
	return listProductsResponse{
		Products: items,
		Pagination: paginationResponse{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}

func toCreateInput(req createProductRequest, image *ports.ImageUpload) ports.CreateProductInput {
	// Validation runs before mapping, so the required price is present here.
	return ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       image,
	}
}

func toUpdateInput(req updateProductRequest, image *ports.ImageUpload) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       image,
	}
}
