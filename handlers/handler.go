package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/services"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles the services behind the HTTP surface. Core order flow
// goes through the services; simple account/catalog CRUD talks to the
// store directly.
type Handler struct {
	db        *gorm.DB
	orders    *services.OrderService
	queries   *services.QueryService
	ratings   *services.RatingService
	jwtSecret []byte
}

func New(db *gorm.DB, orders *services.OrderService, queries *services.QueryService, ratings *services.RatingService, jwtSecret []byte) *Handler {
	return &Handler{
		db:        db,
		orders:    orders,
		queries:   queries,
		ratings:   ratings,
		jwtSecret: jwtSecret,
	}
}

// principal builds the caller's principal from token claims. Restaurant
// owners get their restaurant resolved separately where needed.
func principal(c *gin.Context) services.Principal {
	return services.Principal{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetRole(c),
	}
}

// ownerRestaurant loads the restaurant owned by the caller, or responds 404.
func (h *Handler) ownerRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := h.db.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// serviceError maps a service failure to its HTTP status. Every validation
// failure carries its specific kind; only unexpected store errors become 500s.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrRestaurantUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNoOpTransition),
		errors.Is(err, statemachine.ErrIllegalTransition),
		errors.Is(err, services.ErrOrderNotRatable),
		errors.Is(err, services.ErrOrderNotInDelivery):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, statemachine.ErrActorNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateRating):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
