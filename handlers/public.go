package handlers

import (
	"net/http"

	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns every restaurant, name-ordered, no auth needed
func (h *Handler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	h.db.Order("name asc").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns a single restaurant with its menu
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.db.Preload("Products").First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns a restaurant's currently available products
func (h *Handler) GetMenu(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var products []models.Product
	h.db.Where("restaurant_id = ? AND is_available = ?", id, true).
		Order("name asc").
		Find(&products)
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Name, "count": len(products), "menu": products})
}

// GetRestaurantRatings lists a restaurant's ratings
func (h *Handler) GetRestaurantRatings(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ratings, err := h.ratings.RestaurantRatings(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(ratings), "ratings": ratings})
}

// GetStateMachineInfo exposes the order workflow for docs and clients
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states": []models.OrderStatus{
			models.StatusPending,
			models.StatusPreparing,
			models.StatusOnTheWay,
			models.StatusDelivered,
			models.StatusCancelled,
		},
		"terminal":    []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"transitions": statemachine.GetAllTransitions(),
	})
}
