package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-marketplace-api/handlers"
	"food-marketplace-api/models"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

// newOwnerRouter wires the restaurant management routes with the auth
// middleware replaced by fixed claims for the given owner.
func newOwnerRouter(db *gorm.DB, ownerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.New(db,
		services.NewOrderService(db, nil),
		services.NewQueryService(db),
		services.NewRatingService(db),
		[]byte("test-secret"))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", ownerID)
		c.Set("role", string(models.RoleRestaurant))
	})
	r.PUT("/restaurant", h.UpdateRestaurant)
	r.PUT("/products/:productId", h.UpdateProduct)
	return r
}

func seedOwnedRestaurant(t *testing.T, db *gorm.DB) (models.User, models.Restaurant) {
	t.Helper()
	owner := models.User{Name: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleRestaurant}
	require.NoError(t, db.Create(&owner).Error)
	restaurant := models.Restaurant{OwnerID: owner.ID, Name: "Pasta Place", IsOpen: true}
	require.NoError(t, db.Create(&restaurant).Error)
	return owner, restaurant
}

// failWrites makes every subsequent update statement fail, simulating a store
// outage after the initial lookups succeed.
func failWrites(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("fail_writes", func(tx *gorm.DB) {
		tx.AddError(errors.New("write failed"))
	})
	require.NoError(t, err)
}

func TestUpdateRestaurant(t *testing.T) {
	db := newTestDB(t)
	owner, restaurant := seedOwnedRestaurant(t, db)
	r := newOwnerRouter(db, owner.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/restaurant",
		strings.NewReader(`{"name": "Renamed Place", "is_open": false, "owner_id": 999}`))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fresh models.Restaurant
	require.NoError(t, db.First(&fresh, restaurant.ID).Error)
	assert.Equal(t, "Renamed Place", fresh.Name)
	assert.False(t, fresh.IsOpen)
	// Ownership is not an updatable field.
	assert.Equal(t, owner.ID, fresh.OwnerID)
}

func TestUpdateRestaurantStoreFailure(t *testing.T) {
	db := newTestDB(t)
	owner, restaurant := seedOwnedRestaurant(t, db)
	r := newOwnerRouter(db, owner.ID)
	failWrites(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/restaurant", strings.NewReader(`{"is_open": false}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var fresh models.Restaurant
	require.NoError(t, db.First(&fresh, restaurant.ID).Error)
	assert.True(t, fresh.IsOpen)
}

func TestUpdateProductStoreFailure(t *testing.T) {
	db := newTestDB(t)
	owner, restaurant := seedOwnedRestaurant(t, db)
	product := models.Product{RestaurantID: restaurant.ID, Name: "Carbonara", Price: 8.99, IsAvailable: true}
	require.NoError(t, db.Create(&product).Error)

	r := newOwnerRouter(db, owner.ID)
	failWrites(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/products/%d", product.ID),
		strings.NewReader(`{"price": 10.50}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.InDelta(t, 8.99, fresh.Price, 0.001)
}
