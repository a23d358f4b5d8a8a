package services

import "errors"

// Validation failures are recoverable and reported synchronously with their
// specific kind; handlers map each one to an HTTP status.
var (
	ErrRestaurantUnavailable = errors.New("restaurant is missing or currently closed")
	ErrInvalidProduct        = errors.New("one or more products are invalid for this restaurant")
	ErrProductUnavailable    = errors.New("one or more products are currently unavailable")
	ErrInvalidQuantity       = errors.New("order must contain at least one item with a positive quantity")
	ErrNoOpTransition        = errors.New("order is already in the requested status")
	ErrNotFound              = errors.New("not found")
	ErrDuplicateRating       = errors.New("order has already been rated")
	ErrOrderNotRatable       = errors.New("order can only be rated after it is delivered or cancelled")
	ErrOrderNotInDelivery    = errors.New("order is not out for delivery")
)
