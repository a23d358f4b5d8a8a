package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"food-marketplace-api/config"
	"food-marketplace-api/handlers"
	"food-marketplace-api/pkg/events"
	"food-marketplace-api/routes"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	log.Println("Database connected and migrated")

	// Event publishing is optional; without a broker URL the services run
	// with a nil publisher and drop events.
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = events.Connect(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: ", err)
		}
		defer publisher.Close()
	}

	orderService := services.NewOrderService(db, publisher)
	queryService := services.NewQueryService(db)
	ratingService := services.NewRatingService(db)
	h := handlers.New(db, orderService, queryService, ratingService, []byte(cfg.JWTSecret))

	// Default middleware: logger + recovery
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
		})
	})

	routes.SetupRoutes(r, h, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}
