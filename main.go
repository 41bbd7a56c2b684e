package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kedai/internal/handlers"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("DATABASE_DRIVER", "memory") // memory | sqlite | postgres
	viper.SetDefault("DATABASE_DSN", "kedai.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables order events
	viper.SetDefault("SEED_PRODUCTS", true)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Message queue (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo, productRepo := buildRepositories()
	cartRepo := repositories.NewMemoryCartRepository()
	orderRepo := repositories.NewMemoryOrderRepository()

	if viper.GetBool("SEED_PRODUCTS") {
		seedProducts(productRepo)
	}

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	handlers.NewUsersHandler(userRepo).RegisterRoutes(app)
	handlers.NewProductsHandler(productRepo).RegisterRoutes(app)
	handlers.NewCartHandler(cartRepo).RegisterRoutes(app)
	handlers.NewOrdersHandler(orderRepo, mqClient).RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting backend on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// buildRepositories picks the storage backend for users and products from
// configuration. Cart rows and orders always live in memory.
func buildRepositories() (repositories.UserRepository, repositories.ProductRepository) {
	driver := viper.GetString("DATABASE_DRIVER")
	if driver == "memory" {
		return repositories.NewMemoryUserRepository(), repositories.NewMemoryProductRepository()
	}

	var dialector gorm.Dialector
	dsn := viper.GetString("DATABASE_DSN")
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		log.Fatalf("Unknown DATABASE_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return repositories.NewGORMUserRepository(db), repositories.NewGORMProductRepository(db)
}

// seedProducts populates the catalogue with demo drinks.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{ID: "prod_1", Name: "Kopi Susu Gula Aren", Price: 20000, Category: models.CategoryCoffee, Description: "Espresso, fresh milk and palm sugar"},
		{ID: "prod_2", Name: "Americano", Price: 15000, Category: models.CategoryCoffee, Description: "Double shot over water"},
		{ID: "prod_3", Name: "Matcha Latte", Price: 25000, Category: models.CategoryNonCoffee, Description: "Ceremonial grade matcha with milk"},
		{ID: "prod_4", Name: "Lemon Tea", Price: 12000, Category: models.CategoryNonCoffee, Description: "Brewed black tea with lemon"},
	}

	for i := range products {
		products[i].CreatedAt = time.Now()
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
}
