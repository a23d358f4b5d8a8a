package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	RestaurantID  uint                 `json:"restaurant_id" binding:"required"`
	Items         []services.CartItem  `json:"items" binding:"required,min=1"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// PlaceOrder creates a new order (customer only)
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.PaymentMethod.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method. Must be: Cash, Card, or Online"})
		return
	}

	detail, err := h.orders.PlaceOrder(c.Request.Context(), customerID, req.RestaurantID, req.Items, req.PaymentMethod)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": detail})
}

// GetActiveOrders returns the customer's in-flight orders
func (h *Handler) GetActiveOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orders, err := h.queries.ActiveOrders(c.Request.Context(), customerID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderHistory returns the customer's most recent orders
func (h *Handler) GetOrderHistory(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orders, err := h.queries.OrderHistory(c.Request.Context(), customerID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order hydrated with items, payment, and tracking
func (h *Handler) GetOrderDetail(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.queries.OrderDetail(c.Request.Context(), principal(c), orderID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": detail})
}

// GetTracking returns the latest known position for one of the customer's orders
func (h *Handler) GetTracking(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	snapshot, err := h.queries.TrackingSnapshot(c.Request.Context(), customerID, orderID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": snapshot})
}

// CancelOrder cancels an order while it is still Pending or Preparing
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Transition(c.Request.Context(), principal(c), orderID, models.StatusCancelled)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID, "status": order.Status})
}

type RateOrderRequest struct {
	Value   int    `json:"value" binding:"required"`
	Comment string `json:"comment"`
}

// RateOrder records the customer's rating for a completed order
func (h *Handler) RateOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.RateOrder(c.Request.Context(), customerID, orderID, req.Value, req.Comment)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rating recorded", "rating": rating})
}
