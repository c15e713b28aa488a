package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/markethub/marketplace-api/internal/api/metrics"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxImageBytes    = 5 << 20
)

// ProductHandler handles HTTP requests for product listings.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      List products with search, filters, sorting and pagination
// @Tags         products
// @Produce      json
// @Param        page      query     int     false  "Page number (min 1)"
// @Param        limit     query     int     false  "Page size (1-50, default 10)"
// @Param        search    query     string  false  "Substring match on name or description"
// @Param        category  query     string  false  "Exact category filter"
// @Param        sort      query     string  false  "Sort field"  Enums(name, price, quantity, category, created_at, updated_at)
// @Param        order     query     string  false  "Sort order"  Enums(ASC, DESC)
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {object}  listProductsResponse
// @Failure      500       {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), parseListParams(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Categories handles GET /products/categories.
//
// @Summary      List distinct product categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  categoriesResponse
// @Failure      500  {object}  errorResponse
// @Router       /products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categoriesResponse{Categories: categories})
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productEnvelope
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productEnvelope{Product: toProductResponse(*item)})
}

// Create handles POST /products.
//
// @Summary      Create a product listing
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name      formData  string  true   "Name (2-200 chars)"
// @Param        category  formData  string  true   "Category"
// @Param        price     formData  number  true   "Price (>= 0)"
// @Param        quantity  formData  int     false  "Quantity (>= 0)"
// @Param        image     formData  file    false  "Image attachment"
// @Success      201       {object}  productMessageResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := readImage(c)
	if err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req, image))
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(item.Category).Inc()

	return c.JSON(http.StatusCreated, productMessageResponse{
		Message: "Product created successfully",
		Product: toProductResponse(*item),
	})
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product listing (owner or admin)
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Product id"
// @Param        name      formData  string  false  "Name (2-200 chars)"
// @Param        category  formData  string  false  "Category"
// @Param        price     formData  number  false  "Price (>= 0)"
// @Param        quantity  formData  int     false  "Quantity (>= 0)"
// @Param        image     formData  file    false  "Replacement image"
// @Success      200       {object}  productMessageResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	normalizeUpdate(&req)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, err := readImage(c)
	if err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toUpdateInput(req, image))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productMessageResponse{
		Message: "Product updated successfully",
		Product: toProductResponse(*item),
	})
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product listing (owner or admin)
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// parseListParams reads the untrusted query string. Unparseable numbers
// degrade to their defaults rather than failing: filtering is permissive.
// The page-size default lives here; clamping belongs to the service.
func parseListParams(c echo.Context) ports.ListProductsInput {
	in := ports.ListProductsInput{
		Page:     1,
		Limit:    defaultPageLimit,
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Order:    c.QueryParam("order"),
	}

	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			in.Page = n
		}
	}
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			in.Limit = n
		}
	}
	if s := c.QueryParam("minPrice"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			in.MinPrice = &v
		}
	}
	if s := c.QueryParam("maxPrice"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			in.MaxPrice = &v
		}
	}
	return in
}

// normalizeUpdate treats empty form values as absent so they retain the
// stored value instead of blanking it.
func normalizeUpdate(req *updateProductRequest) {
	if req.Name != nil && *req.Name == "" {
		req.Name = nil
	}
	if req.Description != nil && *req.Description == "" {
		req.Description = nil
	}
	if req.Category != nil && *req.Category == "" {
		req.Category = nil
	}
}

// readImage pulls the optional image file out of the multipart form. The
// upload is fully read and the temp file handle closed here, on success and
// failure alike, so no request leaves stray artifacts behind.
func readImage(c echo.Context) (*ports.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	if fh.Size > maxImageBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "image exceeds maximum size of 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	return &ports.ImageUpload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
