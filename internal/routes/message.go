package routes

import (
	"github.com/Karann2002/SnapLink-backend/internal/handlers"
	"github.com/Karann2002/SnapLink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	{
		messages.POST("", middleware.MessageRateLimit(), handlers.SendMessage)
		messages.GET("/:sender/:receiver", handlers.GetMessages)
	}

	r.GET("/conversations/:userId", handlers.GetConversations)
}
