package main

import (
	_ "carrental/api/swagger" // swagger docs
	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/handler"
	"carrental/internal/middleware"
	"carrental/internal/navigation"
	"carrental/internal/repository"
	"carrental/internal/service"
	"carrental/internal/websocket"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Car Rental Admin API
// @version         1.0
// @description     REST API behind the car-rental admin dashboard: auth, role-gated navigation, car/user CRUD, image upload and car reports.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	imageStore, err := service.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Upload directory setup failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	carRepo := repository.NewCarRepository(db)

	authService := service.NewAuthService(userRepo, tokenRepo)
	userService := service.NewUserService(userRepo, roleRepo, imageStore)
	roleService := service.NewRoleService(roleRepo)
	carService := service.NewCarService(carRepo, imageStore, wsHub, cfg.APIBaseURL)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	carHandler := handler.NewCarHandler(carService, imageStore)
	menuHandler := handler.NewMenuHandler(userService, navigation.GuestMenuMode(cfg.MenuGuestMode))

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for fleet events
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	menuHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api)
	carHandler.RegisterRoutes(api)

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
