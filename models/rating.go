package models

import "time"

// Rating is left by the customer once an order reaches a terminal state.
// One rating per order.
type Rating struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CustomerID   uint      `json:"customer_id" gorm:"not null"`
	OrderID      uint      `json:"order_id" gorm:"not null;uniqueIndex"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	DriverID     *uint     `json:"driver_id"`
	Value        int       `json:"value" gorm:"not null"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
