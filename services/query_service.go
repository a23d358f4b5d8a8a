package services

import (
	"context"
	"errors"

	"food-marketplace-api/models"

	"gorm.io/gorm"
)

const historyLimit = 50

// QueryService serves read projections over order data. It never mutates
// anything and tolerates stale reads.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// ActiveOrders returns the customer's in-flight orders, newest first.
func (s *QueryService) ActiveOrders(ctx context.Context, customerID uint) ([]OrderSummary, error) {
	active := []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusOnTheWay}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("customer_id = ? AND status IN ?", customerID, active).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// OrderHistory returns the customer's most recent orders, newest first,
// bounded to the last 50.
func (s *QueryService) OrderHistory(ctx context.Context, customerID uint) ([]OrderSummary, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Limit(historyLimit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return toSummaries(orders), nil
}

// OrderDetail returns the hydrated order view, scoped to the principal:
// orders outside the caller's reach do not exist as far as they can tell.
func (s *QueryService) OrderDetail(ctx context.Context, p Principal, orderID uint) (*OrderDetail, error) {
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
	return buildOrderDetail(db, orderID)
}

// TrackingSnapshot returns the most recent delivery position for one of the
// customer's orders, with nil coordinates when nothing has been recorded.
func (s *QueryService) TrackingSnapshot(ctx context.Context, customerID, orderID uint) (*TrackingSnapshot, error) {
	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.Where("id = ? AND customer_id = ?", orderID, customerID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	snapshot := &TrackingSnapshot{OrderID: order.ID, Status: order.Status}

	var point models.DeliveryTracking
	err = db.Where("order_id = ?", orderID).Order("updated_at desc").First(&point).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snapshot, nil
		}
		return nil, err
	}

	snapshot.Latitude = &point.Latitude
	snapshot.Longitude = &point.Longitude
	snapshot.UpdatedAt = &point.UpdatedAt
	return snapshot, nil
}

// Dashboard computes the admin aggregate in a handful of scalar queries.
func (s *QueryService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Restaurant{}).Count(&stats.TotalRestaurants).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.StatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// RestaurantOrders lists a restaurant's orders, newest first, optionally
// filtered by status.
func (s *QueryService) RestaurantOrders(ctx context.Context, restaurantID uint, status models.OrderStatus) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// RestaurantOverview summarizes the owner's restaurant: product count and
// orders still in flight.
func (s *QueryService) RestaurantOverview(ctx context.Context, restaurantID uint) (*RestaurantOverview, error) {
	db := s.db.WithContext(ctx)

	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	overview := &RestaurantOverview{
		RestaurantID: restaurant.ID,
		Name:         restaurant.Name,
		IsOpen:       restaurant.IsOpen,
	}
	if err := db.Model(&models.Product{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&overview.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("restaurant_id = ? AND status NOT IN ?", restaurantID,
			[]models.OrderStatus{models.StatusDelivered, models.StatusCancelled}).
		Count(&overview.ActiveOrders).Error; err != nil {
		return nil, err
	}
	return overview, nil
}

// AvailableDeliveries lists orders being prepared with no driver yet,
// oldest first so the longest-waiting order is claimed next.
func (s *QueryService) AvailableDeliveries(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("status = ? AND driver_id IS NULL", models.StatusPreparing).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DriverDeliveries lists every order assigned to the driver, most recently
// touched first.
func (s *QueryService) DriverDeliveries(ctx context.Context, driverID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Customer").
		Where("driver_id = ?", driverID).
		Order("updated_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminOrders lists all orders with optional status, customer, and
// restaurant filters, newest first.
func (s *QueryService) AdminOrders(ctx context.Context, status models.OrderStatus, customerID, restaurantID uint) ([]models.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("Customer").
		Preload("Driver").
		Preload("Payment")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	if restaurantID != 0 {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
