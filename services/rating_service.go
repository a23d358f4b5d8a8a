package services

import (
	"context"
	"errors"

	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"gorm.io/gorm"
)

// RatingService records customer ratings for completed orders and keeps the
// restaurant's average up to date.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// RateOrder creates the single rating for a terminal-state order. The value
// is clamped to [1,5]. Restaurant and driver attribution come from the
// order, not the request.
func (s *RatingService) RateOrder(ctx context.Context, customerID, orderID uint, value int, comment string) (*models.Rating, error) {
	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !statemachine.IsTerminal(order.Status) {
		return nil, ErrOrderNotRatable
	}

	rating := models.Rating{
		CustomerID:   customerID,
		OrderID:      orderID,
		RestaurantID: order.RestaurantID,
		DriverID:     order.DriverID,
		Value:        clampRating(value),
		Comment:      comment,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Rating{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateRating
		}
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Rating{}).
			Where("restaurant_id = ?", order.RestaurantID).
			Select("AVG(value)").
			Scan(&avg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Restaurant{}).
			Where("id = ?", order.RestaurantID).
			Update("rating_avg", avg).Error
	})
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// RestaurantRatings lists a restaurant's ratings, newest first.
func (s *RatingService) RestaurantRatings(ctx context.Context, restaurantID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// AllRatings lists every rating, newest first. Admin use.
func (s *RatingService) AllRatings(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func clampRating(value int) int {
	if value < 1 {
		return 1
	}
	if value > 5 {
		return 5
	}
	return value
}
