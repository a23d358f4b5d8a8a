package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetAvailableDeliveries shows orders being prepared with no driver assigned
func (h *Handler) GetAvailableDeliveries(c *gin.Context) {
	orders, err := h.queries.AvailableDeliveries(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyDeliveries returns all orders assigned to the logged-in driver
func (h *Handler) GetMyDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orders, err := h.queries.DriverDeliveries(c.Request.Context(), driverID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// PickupOrder claims an order being prepared and takes it out for delivery
func (h *Handler) PickupOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Transition(c.Request.Context(), principal(c), orderID, models.StatusOnTheWay)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order picked up", "order_id": order.ID, "status": order.Status})
}

// DeliverOrder completes a delivery assigned to the driver
func (h *Handler) DeliverOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := h.db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.DriverID == nil || *order.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this order"})
		return
	}

	updated, err := h.orders.Transition(c.Request.Context(), principal(c), orderID, models.StatusDelivered)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Order delivered",
		"order_id":     updated.ID,
		"status":       updated.Status,
		"delivered_at": updated.DeliveredAt,
	})
}

type UpdateDeliveryStatusRequest struct {
	Status models.DeliveryStatus `json:"status" binding:"required"`
}

// UpdateDeliveryStatus accepts the driver-facing status vocabulary and maps
// it onto the order workflow
func (h *Handler) UpdateDeliveryStatus(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, ok := statemachine.OrderStatusFor(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery status"})
		return
	}

	order, err := h.orders.Transition(c.Request.Context(), principal(c), orderID, target)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Delivery status updated",
		"order_id":        order.ID,
		"delivery_status": req.Status,
		"order_status":    order.Status,
	})
}

type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// PostLocation appends a position update for an order out for delivery
func (h *Handler) PostLocation(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req LocationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := h.orders.AppendTracking(c.Request.Context(), driverID, orderID, req.Latitude, req.Longitude)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Location recorded", "tracking": point})
}
