package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"food-marketplace-api/models"
	"food-marketplace-api/pkg/events"
	"food-marketplace-api/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one entry of a client-side cart. Nothing is persisted until
// PlaceOrder succeeds.
type CartItem struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// OrderService turns carts into durable orders and enforces the status
// workflow over them.
type OrderService struct {
	db     *gorm.DB
	events *events.Publisher
}

// NewOrderService creates an OrderService. The publisher may be nil, in
// which case lifecycle events are dropped.
func NewOrderService(db *gorm.DB, pub *events.Publisher) *OrderService {
	return &OrderService{db: db, events: pub}
}

// PlaceOrder validates the cart against the catalog, prices it with current
// product prices, and atomically creates the order, its line items, and the
// initial payment. Prices are snapshotted into the line items and never
// recalculated afterwards.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID, restaurantID uint, items []CartItem, method models.PaymentMethod) (*OrderDetail, error) {
	if len(items) == 0 {
		return nil, ErrInvalidQuantity
	}

	db := s.db.WithContext(ctx)

	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantUnavailable
		}
		return nil, err
	}
	if !restaurant.IsOpen {
		return nil, ErrRestaurantUnavailable
	}

	productIDs := distinctProductIDs(items)
	var products []models.Product
	if err := db.Where("restaurant_id = ? AND id IN ?", restaurantID, productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	// Covers both "not found" and "belongs to another restaurant".
	if len(products) != len(productIDs) {
		return nil, ErrInvalidProduct
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		if !p.IsAvailable {
			return nil, ErrProductUnavailable
		}
		byID[p.ID] = p
	}

	// One line item per distinct product; repeated cart entries merge.
	quantities := make(map[uint]int, len(productIDs))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		quantities[item.ProductID] += item.Quantity
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		product := byID[id]
		qty := quantities[id]
		total += product.Price * float64(qty)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Quantity:  qty,
			Price:     product.Price,
			Name:      product.Name,
		})
	}

	now := time.Now().UTC()
	order := models.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       models.StatusPending,
		TotalPrice:   total,
		CreatedAt:    now,
		Items:        orderItems,
	}

	payment := models.Payment{
		Method:         method,
		Status:         models.PaymentPaid,
		TransactionRef: newTransactionRef(),
	}
	if method == models.PaymentCash {
		payment.Status = models.PaymentPending
	} else {
		paidAt := now
		payment.PaidAt = &paidAt
	}

	// Order, items and payment persist as one unit; a partial order is
	// never observable.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		payment.OrderID = order.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	if pubErr := s.events.Publish(events.OrderCreated, map[string]interface{}{
		"order_id":      order.ID,
		"customer_id":   order.CustomerID,
		"restaurant_id": order.RestaurantID,
		"total_price":   order.TotalPrice,
		"status":        order.Status,
	}); pubErr != nil {
		log.Printf("warning: failed to publish order created event for order %d: %v", order.ID, pubErr)
	}

	return buildOrderDetail(db, order.ID)
}

// Transition advances an order to the target status on behalf of the
// principal. The write is a single status-guarded update, so two concurrent
// transitions on the same order serialize: the loser re-reads the fresh row
// and is rejected with the error its request deserves against that state.
func (s *OrderService) Transition(ctx context.Context, p Principal, orderID uint, target models.OrderStatus) (*models.Order, error) {
	db := s.db.WithContext(ctx)

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := checkOrderOwnership(p, &order); err != nil {
		return nil, err
	}

	if err := classifyTransition(order.Status, target, p.Role); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": target}
	// A driver acting on an unassigned order claims it, whether picking it
	// up or completing a handoff the restaurant sent out unclaimed.
	if p.Role == models.RoleDriver && order.DriverID == nil {
		updates["driver_id"] = p.UserID
	}
	if target == models.StatusDelivered {
		updates["delivered_at"] = time.Now().UTC()
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost a race: another transition applied first. Classify this
		// request against the post-transition state.
		if err := db.First(&order, orderID).Error; err != nil {
			return nil, err
		}
		if err := classifyTransition(order.Status, target, p.Role); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: order status changed to %s concurrently, retry against the current state",
			statemachine.ErrIllegalTransition, order.Status)
	}

	from := order.Status
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if pubErr := s.events.Publish(events.OrderStatusChanged, map[string]interface{}{
		"order_id": order.ID,
		"from":     from,
		"to":       order.Status,
		"actor":    p.Role,
	}); pubErr != nil {
		log.Printf("warning: failed to publish status change event for order %d: %v", order.ID, pubErr)
	}

	return &order, nil
}

func classifyTransition(current, target models.OrderStatus, role models.UserRole) error {
	if target == current {
		return ErrNoOpTransition
	}
	return statemachine.CanTransition(current, target, role)
}

// checkOrderOwnership hides orders that do not belong to the acting
// principal. Drivers may touch unassigned orders (claiming a pickup) or
// their own; admins see everything.
func checkOrderOwnership(p Principal, order *models.Order) error {
	switch p.Role {
	case models.RoleCustomer:
		if order.CustomerID != p.UserID {
			return ErrNotFound
		}
	case models.RoleRestaurant:
		if order.RestaurantID != p.RestaurantID {
			return ErrNotFound
		}
	case models.RoleDriver:
		if order.DriverID != nil && *order.DriverID != p.UserID {
			return ErrNotFound
		}
	case models.RoleAdmin:
	default:
		return ErrNotFound
	}
	return nil
}

func distinctProductIDs(items []CartItem) []uint {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// newTransactionRef generates an opaque unique payment reference,
// e.g. TXN-1b4f9c0d3a2e.
func newTransactionRef() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "TXN-" + hex[:12]
}
