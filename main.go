package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/fooddash-app/fooddash-backend/database"
	"github.com/fooddash-app/fooddash-backend/internal/config"
	"github.com/fooddash-app/fooddash-backend/internal/handlers"
	"github.com/fooddash-app/fooddash-backend/internal/jobs"
	"github.com/fooddash-app/fooddash-backend/internal/middleware"
	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/routes"
	"github.com/fooddash-app/fooddash-backend/internal/services"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	cfg := config.Load()

	// Initialize storage
	var store storage.Store
	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.Admin{},
			&models.FoodItem{},
			&models.Cart{},
			&models.CartItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.Payment{},
			&models.GatewayOrder{},
			&models.OTP{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Outbound email
	var emailSender services.EmailSender = services.NewSMTPSender(cfg.SMTP)
	if cfg.SMTP.Host == "" {
		log.Println("⚠️  SMTP not configured - OTP emails will fail to send")
	}

	// Services
	otpService := services.NewOTPService(store, emailSender, cfg.OTPTTL, cfg.OTPLength)
	userService := services.NewUserService(store)
	adminService := services.NewAdminService(store, cfg.IsPrivilegedAdmin)
	cartService := services.NewCartService(store)
	orderService := services.NewOrderService(store, cartService)
	foodService := services.NewFoodService(store)
	aiService := services.NewAIService(cfg.OpenAI)

	gateway := services.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	paymentService := services.NewPaymentService(store, gateway,
		cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency)
	paymentService.RegisterHook(models.PurposeAdminSubscription, adminService.ActivateMonthlySubscription)

	// OTP retention sweep
	cleanupJob := jobs.NewCleanupJob(store, cfg.OTPSweep, cfg.OTPRetain)
	cleanupJob.Start()

	log.Println("✅ All services initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "FoodDash Backend v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app,
		routes.Handlers{
			Auth:    handlers.NewAuthHandler(userService, otpService, cfg.JWTSecret, cfg.JWTTTL),
			Admin:   handlers.NewAdminHandler(adminService, orderService, otpService, cfg.JWTSecret, cfg.JWTTTL),
			Cart:    handlers.NewCartHandler(cartService),
			Order:   handlers.NewOrderHandler(orderService),
			Payment: handlers.NewPaymentHandler(paymentService, orderService, cfg.SubscriptionFee),
			Food:    handlers.NewFoodHandler(foodService, aiService),
			Health:  handlers.NewHealthHandler(store, version),
		},
		routes.Middleware{
			RequireUser:         middleware.RequireUser(cfg.JWTSecret, store),
			RequireAdmin:        middleware.RequireAdmin(cfg.JWTSecret, store),
			RequireSubscription: middleware.RequireActiveSubscription(adminService),
		},
	)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 FoodDash Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("💳 Payments: %s", razorpayStatus(cfg))
	log.Printf("🤖 AI suggestions: %s", openAIStatus(cfg))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func razorpayStatus(cfg *config.Config) string {
	if cfg.Razorpay.KeyID == "" {
		return "Not configured"
	}
	return "Configured"
}

func openAIStatus(cfg *config.Config) string {
	if cfg.OpenAI.APIKey == "" {
		return "Fallback content only"
	}
	return "Configured"
}
