package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/marketplace-api/internal/core/ports"
)

// DashboardHandler serves the aggregate inventory view.
type DashboardHandler struct {
	service ports.StatsService
}

func NewDashboardHandler(service ports.StatsService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /dashboard/stats.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
