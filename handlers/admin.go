package handlers

import (
	"net/http"
	"strconv"

	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns the platform-wide aggregate
func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.queries.Dashboard(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": stats})
}

// AdminGetAllOrders returns all orders with optional filters
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	customerID, _ := strconv.ParseUint(c.Query("customer_id"), 10, 32)
	restaurantID, _ := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)

	orders, err := h.queries.AdminOrders(c.Request.Context(),
		models.OrderStatus(c.Query("status")), uint(customerID), uint(restaurantID))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdminGetOrderDetail returns any order fully hydrated
func (h *Handler) AdminGetOrderDetail(c *gin.Context) {
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

// AdminCancelOrder cancels an order through the same workflow customers use
func (h *Handler) AdminCancelOrder(c *gin.Context) {
	orderID, ok := idParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Transition(c.Request.Context(), principal(c), orderID, models.StatusCancelled)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": order.ID, "status": order.Status})
}

// AdminGetAllUsers returns all users, optionally filtered by role
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := h.db
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllRestaurants returns all restaurants with their owners
func (h *Handler) AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	h.db.Preload("Owner").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminGetAllRatings returns every rating on the platform
func (h *Handler) AdminGetAllRatings(c *gin.Context) {
	ratings, err := h.ratings.AllRatings(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(ratings), "ratings": ratings})
}
