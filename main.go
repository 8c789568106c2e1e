package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/202320020818/Fruit-and-sweets-1/cache"
	orderControllers "github.com/202320020818/Fruit-and-sweets-1/controllers/order"
	"github.com/202320020818/Fruit-and-sweets-1/events"
	"github.com/202320020818/Fruit-and-sweets-1/metrics"
	"github.com/202320020818/Fruit-and-sweets-1/models"
	"github.com/202320020818/Fruit-and-sweets-1/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.DeliveryDetail{},
		&models.Order{},
		&models.OrderItem{},
		&models.BankSlip{},
		&models.Comment{},
		&models.CommentLike{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is an optional fast path for idempotency keys and order status
	rdb := initRedis()

	// Kafka order event producer, optional
	producer := initProducer(ctx)

	// Gin setup
	r := gin.Default()

	// Bank slips are small; cap multipart memory accordingly
	r.MaxMultipartMemory = 16 << 20 // 16MB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded bank slips
	uploadsDir := os.Getenv("UPLOAD_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	r.Static("/uploads", uploadsDir)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup routes
	routes.SetupRoutes(r, db, rdb, producer)

	// Expire abandoned pending checkouts hourly, anything older than a day
	go orderControllers.StartPendingOrderSweep(db, producer, time.Hour, 24*time.Hour)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initRedis returns nil when no REDIS_ADDR is configured; callers treat a
// nil client as "no cache".
func initRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("ℹ️ REDIS_ADDR not set, running without cache")
		return nil
	}
	log.Printf("✅ Using Redis at %s", addr)
	return cache.New(addr)
}

// initProducer returns nil when no KAFKA_BROKERS is configured; a nil
// producer drops events.
func initProducer(ctx context.Context) *events.Producer {
	brokersEnv := os.Getenv("KAFKA_BROKERS")
	if brokersEnv == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, order events disabled")
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(brokersEnv, ",") {
		if t := strings.TrimSpace(b); t != "" {
			brokers = append(brokers, t)
		}
	}
	producer := events.NewProducer(brokers, events.TopicOrders, 1024)
	producer.Start(ctx)
	log.Printf("✅ Publishing order events to %s", events.TopicOrders)
	return producer
}
