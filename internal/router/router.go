package router

import (
	"net/http"

	"github.com/flaveur/RealTimeChatApp/internal/auth"
	"github.com/flaveur/RealTimeChatApp/internal/handler"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// New builds the gin engine with all application routes.
func New() *gin.Engine {
	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}
		api.POST("/logout", handler.LogoutUser)

		// Avatar files are public; uploading is not.
		api.GET("/upload/avatar/:key", handler.GetAvatar)

		protected := api.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			// Profile routes
			protected.GET("/me", handler.GetMe)
			protected.PUT("/me/name", handler.UpdateName)
			protected.PUT("/me/status", handler.UpdateStatus)
			protected.PUT("/me/avatar", handler.UpdateAvatar)
			protected.PUT("/me/status-text", handler.UpdateStatusText)

			// Friend routes
			protected.GET("/friends", handler.GetFriends)
			protected.GET("/friends/requests", handler.GetFriendRequests)
			protected.GET("/friends/search", handler.SearchUsers)
			protected.POST("/friends/request", handler.SendFriendRequest)
			protected.POST("/friends/accept", handler.AcceptFriendRequest)
			protected.POST("/friends/reject", handler.RejectFriendRequest)
			protected.DELETE("/friends/remove", handler.RemoveFriend)

			// Message routes
			protected.GET("/messages", handler.GetConversations)
			protected.GET("/messages/:friendId", handler.GetConversation)
			protected.POST("/messages", handler.SendMessage)
			protected.POST("/messages/:friendId/read", handler.MarkConversationRead)

			// Note routes
			protected.GET("/notes", handler.GetNotes)
			protected.POST("/notes", handler.CreateNote)
			protected.PUT("/notes/:id", handler.UpdateNote)
			protected.DELETE("/notes/:id", handler.DeleteNote)

			// Settings routes
			protected.GET("/settings", handler.GetSettings)
			protected.PUT("/settings", handler.UpdateSettings)

			// Upload routes
			protected.POST("/upload/avatar", handler.UploadAvatar)
		}
	}

	return router
}
