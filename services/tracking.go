package services

import (
	"context"
	"errors"
	"time"

	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// AppendTracking records a position update from the assigned driver while
// the order is out for delivery. Points are append-only and never affect
// the order's lifecycle.
func (s *OrderService) AppendTracking(ctx context.Context, driverID, orderID uint, lat, lng float64) (*models.DeliveryTracking, error) {
	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.Where("id = ? AND driver_id = ?", orderID, driverID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.Status != models.StatusOnTheWay {
		return nil, ErrOrderNotInDelivery
	}

	point := models.DeliveryTracking{
		OrderID:   orderID,
		Latitude:  lat,
		Longitude: lng,
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}
