package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit/service-shareit/internal/application"
	"github.com/shareit/service-shareit/internal/platform/response"
)

// AdminBookingHandler serves operational booking endpoints.
type AdminBookingHandler struct {
	service *application.BookingService
}

// NewAdminBookingHandler creates a new AdminBookingHandler.
func NewAdminBookingHandler(service *application.BookingService) *AdminBookingHandler {
	return &AdminBookingHandler{service: service}
}

// RegisterRoutes registers admin booking routes.
func (h *AdminBookingHandler) RegisterRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	{
		admin.GET("/stats/bookings", h.BookingStats)
	}
}

// BookingStats handles GET /admin/stats/bookings.
func (h *AdminBookingHandler) BookingStats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
