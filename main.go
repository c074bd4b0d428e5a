package main

import (
	"log"

	"chirp/config"
	"chirp/controllers"
	"chirp/database"
	"chirp/handlers"
	"chirp/middleware"
	"chirp/routes"
	"chirp/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "chirp/docs"
)

// @title Chirp API
// @version 1.0
// @description A microblog API: register, log in and post short tweets with optional images into a paginated public feed.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.Migrate(db)

	storage, err := services.NewLocalStorage(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatal("Failed to set up media storage:", err)
	}

	r := gin.Default()

	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Logger())

	r.Static(cfg.MediaBaseURL, cfg.MediaDir)

	hubService := services.NewHubService()

	authController := controllers.NewAuthController(db, storage)
	userController := controllers.NewUserController(db, storage)
	tweetController := controllers.NewTweetController(db, storage, hubService)
	wsHandler := handlers.NewWebSocketHandler(hubService)

	routes.SetupRoutes(r, authController, userController, tweetController, wsHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
