package services

import (
	"errors"
	"time"

	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// OrderSummary is the list-view shape for order history and active orders.
type OrderSummary struct {
	ID             uint               `json:"id"`
	RestaurantID   uint               `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	TotalPrice     float64            `json:"total_price"`
	Status         models.OrderStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	DeliveredAt    *time.Time         `json:"delivered_at"`
}

type OrderItemView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type PaymentView struct {
	Method         models.PaymentMethod `json:"method"`
	Status         models.PaymentStatus `json:"status"`
	TransactionRef string               `json:"transaction_ref"`
	PaidAt         *time.Time           `json:"paid_at"`
}

type TrackingPoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderDetail is the fully hydrated order view: line items with product
// names and computed line totals, payment summary, and tracking points in
// chronological order.
type OrderDetail struct {
	ID             uint               `json:"id"`
	CustomerID     uint               `json:"customer_id"`
	RestaurantID   uint               `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	DriverID       *uint              `json:"driver_id"`
	TotalPrice     float64            `json:"total_price"`
	Status         models.OrderStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	DeliveredAt    *time.Time         `json:"delivered_at"`
	Items          []OrderItemView    `json:"items"`
	Payment        *PaymentView       `json:"payment"`
	Tracking       []TrackingPoint    `json:"tracking"`
}

// TrackingSnapshot carries the most recent known position of an order, or
// nil coordinates if no point has been recorded yet.
type TrackingSnapshot struct {
	OrderID   uint               `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	Latitude  *float64           `json:"latitude"`
	Longitude *float64           `json:"longitude"`
	UpdatedAt *time.Time         `json:"updated_at"`
}

// DashboardStats is the admin-level aggregate. Revenue is gross bookings:
// the sum over all orders regardless of status, cancelled included.
type DashboardStats struct {
	TotalOrders      int64   `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalUsers       int64   `json:"total_users"`
	TotalRestaurants int64   `json:"total_restaurants"`
	PendingOrders    int64   `json:"pending_orders"`
}

// RestaurantOverview is the owner's dashboard header.
type RestaurantOverview struct {
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name"`
	IsOpen       bool   `json:"is_open"`
	Products     int64  `json:"products"`
	ActiveOrders int64  `json:"active_orders"`
}

func buildOrderDetail(db *gorm.DB, orderID uint) (*OrderDetail, error) {
	var order models.Order
	err := db.
		Preload("Restaurant").
		Preload("Items").
		Preload("Payment").
		Preload("Trackings", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("updated_at asc")
		}).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &OrderDetail{
		ID:             order.ID,
		CustomerID:     order.CustomerID,
		RestaurantID:   order.RestaurantID,
		RestaurantName: order.Restaurant.Name,
		DriverID:       order.DriverID,
		TotalPrice:     order.TotalPrice,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
		DeliveredAt:    order.DeliveredAt,
		Items:          make([]OrderItemView, 0, len(order.Items)),
		Tracking:       make([]TrackingPoint, 0, len(order.Trackings)),
	}

	for _, item := range order.Items {
		detail.Items = append(detail.Items, OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			LineTotal:   item.Price * float64(item.Quantity),
		})
	}

	if order.Payment != nil {
		detail.Payment = &PaymentView{
			Method:         order.Payment.Method,
			Status:         order.Payment.Status,
			TransactionRef: order.Payment.TransactionRef,
			PaidAt:         order.Payment.PaidAt,
		}
	}

	for _, t := range order.Trackings {
		detail.Tracking = append(detail.Tracking, TrackingPoint{
			Latitude:  t.Latitude,
			Longitude: t.Longitude,
			UpdatedAt: t.UpdatedAt,
		})
	}

	return detail, nil
}

func toSummaries(orders []models.Order) []OrderSummary {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{
			ID:             o.ID,
			RestaurantID:   o.RestaurantID,
			RestaurantName: o.Restaurant.Name,
			TotalPrice:     o.TotalPrice,
			Status:         o.Status,
			CreatedAt:      o.CreatedAt,
			DeliveredAt:    o.DeliveredAt,
		})
	}
	return summaries
}
