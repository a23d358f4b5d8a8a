package services

import "food-marketplace-api/models"

// Principal is the authenticated caller, resolved once per request from the
// token (and, for restaurant owners, from their restaurant record). It is
// passed explicitly into every operation; nothing is cached between requests.
type Principal struct {
	UserID uint
	Role   models.UserRole

	// RestaurantID is the restaurant owned by the caller. Zero unless
	// Role is RoleRestaurant and the owner has created their restaurant.
	RestaurantID uint
}
