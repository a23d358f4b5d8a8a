package models

import "time"

// OrderStatus represents the lifecycle state of an order.
// Pending is the only initial state; Delivered and Cancelled are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusOnTheWay  OrderStatus = "OnTheWay"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	CustomerID   uint               `json:"customer_id" gorm:"not null;index"`
	Customer     User               `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint               `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant         `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DriverID     *uint              `json:"driver_id"`
	Driver       *User              `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	TotalPrice   float64            `json:"total_price"`
	Status       OrderStatus        `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeliveredAt  *time.Time         `json:"delivered_at"`
	Items        []OrderItem        `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payment      *Payment           `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	Trackings    []DeliveryTracking `json:"trackings,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is immutable once created. Price and Name are snapshots taken
// from the product at order-creation time, never the live values.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Name      string  `json:"name"`
}
