package handler

import "time"

// createProductRequest binds the multipart form fields of a new listing.
// The image file rides alongside and is read separately. Price is a pointer
// so that an absent field fails "required" while an explicit 0 still passes
// the lower bound.
type createProductRequest struct {
	Name        string   `form:"name"        validate:"required,min=2,max=200"`
	Description string   `form:"description" validate:"omitempty,max=2000"`
	Price       *float64 `form:"price"       validate:"required,gte=0"`
	Quantity    int      `form:"quantity"    validate:"gte=0"`
	Category    string   `form:"category"    validate:"required,max=100"`
}

// updateProductRequest binds a partial update: nil fields were not present
// in the form and retain their stored values.
type updateProductRequest struct {
	Name        *string  `form:"name"        validate:"omitempty,min=2,max=200"`
	Description *string  `form:"description" validate:"omitempty,max=2000"`
	Price       *float64 `form:"price"       validate:"omitempty,gte=0"`
	Quantity    *int     `form:"quantity"    validate:"omitempty,gte=0"`
	Category    *string  `form:"category"    validate:"omitempty,min=1,max=100"`
}

// productResponse is the JSON shape of a single listing. Author is a
// pointer so an orphaned owner reference serializes as null.
type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	ImageBase64 string    `json:"image_base64,omitempty"`
	UserID      string    `json:"user_id"`
	Author      *string   `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listProductsResponse struct {
	Products   []productResponse  `json:"products"`
	Pagination paginationResponse `json:"pagination"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type productEnvelope struct {
	Product productResponse `json:"product"`
}

type productMessageResponse struct {
	Message string          `json:"message"`
	Product productResponse `json:"product"`
}

type messageResponse struct {
	Message string `json:"message"`
}
