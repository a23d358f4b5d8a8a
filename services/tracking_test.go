package services_test

import (
	"context"
	"testing"

	"food-marketplace-api/models"
	"food-marketplace-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAssignedOrder(t *testing.T, db *gorm.DB, customerID, restaurantID, driverID uint, status models.OrderStatus) models.Order {
	t.Helper()
	order := seedOrder(t, db, customerID, restaurantID, status, 20)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("driver_id", driverID).Error)
	order.DriverID = &driverID
	return order
}

func TestAppendTracking(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	driver := seedUser(t, db, "dave", models.RoleDriver)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)
	order := seedAssignedOrder(t, db, customer.ID, restaurant.ID, driver.ID, models.StatusOnTheWay)

	svc := services.NewOrderService(db, nil)
	ctx := context.Background()

	point, err := svc.AppendTracking(ctx, driver.ID, order.ID, 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, order.ID, point.OrderID)
	assert.InDelta(t, 48.85, point.Latitude, 0.0001)
	assert.InDelta(t, 2.35, point.Longitude, 0.0001)
	assert.False(t, point.UpdatedAt.IsZero())

	// Points accumulate rather than overwrite.
	_, err = svc.AppendTracking(ctx, driver.ID, order.ID, 48.86, 2.36)
	require.NoError(t, err)

	var count int64
	db.Model(&models.DeliveryTracking{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAppendTrackingRejections(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "alice", models.RoleCustomer)
	owner := seedUser(t, db, "bob", models.RoleRestaurant)
	driver := seedUser(t, db, "dave", models.RoleDriver)
	otherDriver := seedUser(t, db, "dan", models.RoleDriver)
	restaurant := seedRestaurant(t, db, owner.ID, "Pasta Place", true)

	svc := services.NewOrderService(db, nil)
	ctx := context.Background()

	t.Run("only the assigned driver may report", func(t *testing.T) {
		order := seedAssignedOrder(t, db, customer.ID, restaurant.ID, driver.ID, models.StatusOnTheWay)
		_, err := svc.AppendTracking(ctx, otherDriver.ID, order.ID, 48.85, 2.35)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("order must be out for delivery", func(t *testing.T) {
		order := seedAssignedOrder(t, db, customer.ID, restaurant.ID, driver.ID, models.StatusPreparing)
		_, err := svc.AppendTracking(ctx, driver.ID, order.ID, 48.85, 2.35)
		assert.ErrorIs(t, err, services.ErrOrderNotInDelivery)
	})

	t.Run("delivered orders stop accepting points", func(t *testing.T) {
		order := seedAssignedOrder(t, db, customer.ID, restaurant.ID, driver.ID, models.StatusDelivered)
		_, err := svc.AppendTracking(ctx, driver.ID, order.ID, 48.85, 2.35)
		assert.ErrorIs(t, err, services.ErrOrderNotInDelivery)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.AppendTracking(ctx, driver.ID, 424242, 48.85, 2.35)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}
