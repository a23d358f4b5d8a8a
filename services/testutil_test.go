package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"food-marketplace-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache DSN
// is keyed by test name so pooled connections see the same database without
// leaking state across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string, open bool) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		OwnerID: ownerID,
		Name:    name,
		IsOpen:  open,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

func seedProduct(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64, available bool) models.Product {
	t.Helper()
	product := models.Product{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		IsAvailable:  available,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, db *gorm.DB, customerID, restaurantID uint, status models.OrderStatus, total float64) models.Order {
	t.Helper()
	order := models.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       status,
		TotalPrice:   total,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}
