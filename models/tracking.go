package models

import "time"

// DeliveryStatus is the driver-facing status vocabulary. It maps onto
// OrderStatus through the state machine; see statemachine.OrderStatusFor.
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "Assigned"
	DeliveryPickedUp  DeliveryStatus = "PickedUp"
	DeliveryOnTheWay  DeliveryStatus = "OnTheWay"
	DeliveryDelivered DeliveryStatus = "Delivered"
)

// DeliveryTracking points are append-only. The most recent point by
// UpdatedAt represents the order's current position.
type DeliveryTracking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}
