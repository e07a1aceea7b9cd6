package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/consumer"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/migrations"
)

func connectDBEnv(host, port, user, pass, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", dbname)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, dbname, host, port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", dbname, host, port, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	db, err := connectDBEnv(
		envOr("DB_HOST", "127.0.0.1"),
		envOr("DB_PORT", "3306"),
		envOr("DB_USER", "root"),
		os.Getenv("DB_PASS"),
		envOr("DB_NAME", "storefront"),
	)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateProducts(3, db); err != nil {
		log.Fatalf("Failed to migrate products table: %v", err)
	}
	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		log.Fatalf("Failed to migrate user tables: %v", err)
	}
	if err := migrations.AutoMigrateOrders(3, db); err != nil {
		log.Fatalf("Failed to migrate order tables: %v", err)
	}
	if err := migrations.AutoMigrateSettings(3, db); err != nil {
		log.Fatalf("Failed to migrate store_settings table: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: envOr("REDIS_ADDR", "localhost:6379"),
	})

	jwtSecret := []byte(envOr("JWT_SECRET", "secret"))
	kafkaWriter := config.NewKafkaWriter(config.OrderTopic)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	catalogService := service.NewCatalogService(productRepo, rdb)
	settingsService := service.NewSettingsService(settingsRepo)
	cartService := service.NewCartService(cart.NewRedisStore(rdb), catalogService, settingsService)
	checkoutService := service.NewCheckoutService(orderRepo, cartService, kafkaWriter)
	orderService := service.NewOrderService(orderRepo, kafkaWriter)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo)
	customerService := service.NewCustomerService(orderRepo)
	authService := service.NewAuthService(userRepo, rdb, jwtSecret)

	productHandler := api.NewProductHandler(catalogService)
	cartHandler := api.NewCartHandler(cartService, checkoutService)
	orderHandler := api.NewOrderHandler(orderService)
	analyticsHandler := api.NewAnalyticsHandler(analyticsService, customerService)
	settingsHandler := api.NewSettingsHandler(settingsService)
	authHandler := api.NewAuthHandler(authService)

	stockConsumer := consumer.NewConsumer(catalogService)
	go stockConsumer.StartKafkaConsumer()

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	// Storefront routes; turned away while maintenance mode is on.
	store := e.Group("", api.MaintenanceMode(settingsService))
	store.POST("/auth/register", authHandler.Register)
	store.POST("/auth/login", authHandler.Login)
	store.GET("/auth/validate", authHandler.ValidateSession)
	store.POST("/auth/signout", authHandler.SignOut)
	store.POST("/auth/change-password", authHandler.ChangePassword)
	store.GET("/auth/profile", authHandler.GetProfile)
	store.PUT("/auth/profile", authHandler.UpdateProfile)
	store.GET("/products", productHandler.GetProducts)
	store.GET("/products/:id", productHandler.GetProduct)
	store.GET("/settings", settingsHandler.GetSettings)
	store.GET("/cart/:session", cartHandler.GetCart)
	store.POST("/cart/:session/items", cartHandler.AddItem)
	store.PUT("/cart/:session/items/:productId", cartHandler.UpdateItem)
	store.DELETE("/cart/:session/items/:productId", cartHandler.RemoveItem)
	store.DELETE("/cart/:session", cartHandler.ClearCart)
	store.GET("/cart/:session/quote", cartHandler.QuoteCart)
	store.POST("/cart/:session/checkout", cartHandler.Checkout)
	store.GET("/orders", orderHandler.TrackOrders)

	// Back office; JWT protected, exempt from maintenance mode.
	admin := e.Group("/admin", echojwt.JWT(jwtSecret), api.RequireAdmin())
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products/:id", productHandler.UpdateProduct)
	admin.DELETE("/products/:id", productHandler.DeleteProduct)
	admin.GET("/products/warmup-cache", productHandler.PreWarmCache)
	admin.GET("/orders", orderHandler.GetOrders)
	admin.GET("/orders/:id", orderHandler.GetOrder)
	admin.PUT("/orders/:id", orderHandler.UpdateOrderStatus)
	admin.DELETE("/orders/:id/cancel", orderHandler.CancelOrder)
	admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
	admin.GET("/customers", analyticsHandler.GetCustomers)
	admin.GET("/analytics", analyticsHandler.GetAnalytics)
	admin.GET("/settings", settingsHandler.GetSettings)
	admin.PUT("/settings", settingsHandler.UpdateSettings)
	admin.POST("/settings/refresh", settingsHandler.RefreshSettings)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "storefront",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + envOr("PORT", "8080")))
}
