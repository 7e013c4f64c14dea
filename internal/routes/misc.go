package routes

import (
	"github.com/Karann2002/SnapLink-backend/internal/handlers"
	"github.com/Karann2002/SnapLink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterSearchRoutes(r gin.IRouter) {
	r.GET("/search", handlers.Search)
}

func RegisterNotificationRoutes(r gin.IRouter) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", handlers.GetNotifications)
		notifications.PUT("/:id/read", handlers.MarkNotificationRead)
	}
}

func RegisterUploadRoutes(r gin.IRouter) {
	r.POST("/upload", middleware.AuthMiddleware(), handlers.UploadFile)
}
