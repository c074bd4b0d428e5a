package routes

import (
	"net/http"

	"chirp/controllers"
	"chirp/handlers"
	"chirp/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authController *controllers.AuthController, userController *controllers.UserController, tweetController *controllers.TweetController, w *handlers.WebSocketHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", middleware.AuthRequired(), authController.Logout)
			auth.GET("/me", middleware.AuthRequired(), authController.Me)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("", tweetController.GetFeed)
			tweets.GET("/:id", tweetController.GetTweet)
			tweets.POST("", middleware.AuthRequired(), tweetController.CreateTweet)
			tweets.PUT("/:id", middleware.AuthRequired(), tweetController.UpdateTweet)
			tweets.DELETE("/:id", middleware.AuthRequired(), tweetController.DeleteTweet)
		}

		users := api.Group("/users")
		{
			users.GET("/:id", userController.GetUser)
			users.DELETE("/:id", middleware.AuthRequired(), userController.DeleteUser)
		}

		api.GET("/feed/live", middleware.AuthRequired(), w.HandleWebSocket)
	}
}
