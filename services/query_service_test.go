package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"food-marketplace-api/models"
	"food-marketplace-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrderAt(t *testing.T, db *gorm.DB, customerID, restaurantID uint, status models.OrderStatus, total float64, at time.Time) models.Order {
	t.Helper()
	order := models.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       status,
		TotalPrice:   total,
		CreatedAt:    at,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestActiveOrdersAndHistory(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	other := seedUser(t, db, "eve", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pending := seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusPending, 10, base)
	onTheWay := seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusOnTheWay, 15, base.Add(time.Hour))
	seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusDelivered, 20, base.Add(2*time.Hour))
	seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusCancelled, 25, base.Add(3*time.Hour))
	seedOrderAt(t, db, other.ID, restaurant.ID, models.StatusPending, 30, base.Add(4*time.Hour))

	queries := services.NewQueryService(db)
	ctx := context.Background()

	active, err := queries.ActiveOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Newest first.
	assert.Equal(t, onTheWay.ID, active[0].ID)
	assert.Equal(t, pending.ID, active[1].ID)
	assert.Equal(t, "Pasta Place", active[0].RestaurantName)

	history, err := queries.OrderHistory(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i-1].CreatedAt.Before(history[i].CreatedAt))
	}
}

func TestOrderHistoryIsBounded(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusDelivered, 10, base.Add(time.Duration(i)*time.Minute))
	}

	history, err := services.NewQueryService(db).OrderHistory(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, history, 50)
	// The oldest five fall off.
	assert.Equal(t, base.Add(54*time.Minute), history[0].CreatedAt.UTC())
}

func TestOrderDetailScoping(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	stranger := seedUser(t, db, "eve", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	product := seedProduct(t, db, restaurant.ID, "Carbonara", 8.99, true)

	orders := services.NewOrderService(db, nil)
	placed, err := orders.PlaceOrder(context.Background(), customer.ID, restaurant.ID, []services.CartItem{
		{ProductID: product.ID, Quantity: 2},
	}, models.PaymentCash)
	require.NoError(t, err)

	queries := services.NewQueryService(db)
	ctx := context.Background()

	detail, err := queries.OrderDetail(ctx, services.Principal{UserID: customer.ID, Role: models.RoleCustomer}, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, detail.ID)
	require.Len(t, detail.Items, 1)
	assert.InDelta(t, 17.98, detail.Items[0].LineTotal, 0.001)
	require.NotNil(t, detail.Payment)

	_, err = queries.OrderDetail(ctx, services.Principal{UserID: stranger.ID, Role: models.RoleCustomer}, placed.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = queries.OrderDetail(ctx, services.Principal{UserID: owner.ID, Role: models.RoleRestaurant, RestaurantID: restaurant.ID + 1}, placed.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Admin sees everything.
	_, err = queries.OrderDetail(ctx, services.Principal{UserID: 999, Role: models.RoleAdmin}, placed.ID)
	assert.NoError(t, err)

	_, err = queries.OrderDetail(ctx, services.Principal{UserID: 999, Role: models.RoleAdmin}, 424242)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestTrackingSnapshot(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	order := seedOrder(t, db, customer.ID, restaurant.ID, models.StatusOnTheWay, 20)

	queries := services.NewQueryService(db)
	ctx := context.Background()

	snapshot, err := queries.TrackingSnapshot(ctx, customer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, snapshot.OrderID)
	assert.Equal(t, models.StatusOnTheWay, snapshot.Status)
	assert.Nil(t, snapshot.Latitude)
	assert.Nil(t, snapshot.Longitude)
	assert.Nil(t, snapshot.UpdatedAt)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.DeliveryTracking{
		OrderID: order.ID, Latitude: 48.85, Longitude: 2.35, UpdatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&models.DeliveryTracking{
		OrderID: order.ID, Latitude: 48.86, Longitude: 2.36, UpdatedAt: base.Add(time.Minute),
	}).Error)

	snapshot, err = queries.TrackingSnapshot(ctx, customer.ID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Latitude)
	assert.InDelta(t, 48.86, *snapshot.Latitude, 0.0001)
	assert.InDelta(t, 2.36, *snapshot.Longitude, 0.0001)

	_, err = queries.TrackingSnapshot(ctx, customer.ID+100, order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)

	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusDelivered, 10)
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusCancelled, 20)
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusPending, 5)

	stats, err := services.NewQueryService(db).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	// Gross bookings: cancelled orders still count.
	assert.InDelta(t, 35.00, stats.TotalRevenue, 0.001)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalRestaurants)
	assert.Equal(t, int64(1), stats.PendingOrders)
}

func TestAvailableDeliveries(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	driver := seedUser(t, db, "dave", models.RoleDriver)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusPreparing, 10, base.Add(time.Hour))
	older := seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusPreparing, 10, base)
	claimed := seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusPreparing, 10, base)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", claimed.ID).Update("driver_id", driver.ID).Error)
	seedOrderAt(t, db, customer.ID, restaurant.ID, models.StatusPending, 10, base)

	available, err := services.NewQueryService(db).AvailableDeliveries(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 2)
	// Longest-waiting first.
	assert.Equal(t, older.ID, available[0].ID)
	assert.Equal(t, newer.ID, available[1].ID)
}

func TestRestaurantOverview(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	seedProduct(t, db, restaurant.ID, "Carbonara", 8.99, true)
	seedProduct(t, db, restaurant.ID, "Tiramisu", 4.50, false)

	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusPending, 10)
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusOnTheWay, 10)
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusDelivered, 10)
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusCancelled, 10)

	queries := services.NewQueryService(db)
	overview, err := queries.RestaurantOverview(context.Background(), restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, restaurant.ID, overview.RestaurantID)
	assert.Equal(t, "Pasta Place", overview.Name)
	assert.True(t, overview.IsOpen)
	assert.Equal(t, int64(2), overview.Products)
	assert.Equal(t, int64(2), overview.ActiveOrders)

	_, err = queries.RestaurantOverview(context.Background(), restaurant.ID+100)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAdminOrdersFilters(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", models.RoleCustomer)
	eve := seedUser(t, db, "eve", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	first := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	second := seedRestaurant(t, db, owner.ID, "Burger Bar", true)

	seedOrder(t, db, alice.ID, first.ID, models.StatusPending, 10)
	seedOrder(t, db, alice.ID, second.ID, models.StatusDelivered, 10)
	seedOrder(t, db, eve.ID, first.ID, models.StatusPending, 10)

	queries := services.NewQueryService(db)
	ctx := context.Background()

	all, err := queries.AdminOrders(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := queries.AdminOrders(ctx, models.StatusPending, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	byCustomer, err := queries.AdminOrders(ctx, "", alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	narrowed, err := queries.AdminOrders(ctx, models.StatusPending, alice.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, alice.ID, narrowed[0].CustomerID)
}

func TestRestaurantOrdersFilter(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	other := seedRestaurant(t, db, owner.ID, "Burger Bar", true)

	for i := 0; i < 3; i++ {
		seedOrder(t, db, customer.ID, restaurant.ID, models.StatusPending, float64(10+i))
	}
	seedOrder(t, db, customer.ID, restaurant.ID, models.StatusDelivered, 40)
	seedOrder(t, db, customer.ID, other.ID, models.StatusPending, 50)

	queries := services.NewQueryService(db)
	ctx := context.Background()

	all, err := queries.RestaurantOrders(ctx, restaurant.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, o := range all {
		assert.Equal(t, restaurant.ID, o.RestaurantID, fmt.Sprintf("order %d leaked from another restaurant", o.ID))
	}

	pending, err := queries.RestaurantOrders(ctx, restaurant.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}
