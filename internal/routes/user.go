package routes

import (
	"github.com/Karann2002/SnapLink-backend/internal/handlers"
	"github.com/Karann2002/SnapLink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.GET("", middleware.AuthMiddleware(), handlers.ListUsers)
		users.GET("/profile", middleware.AuthMiddleware(), handlers.GetProfile)
		users.PUT("/profile/update", middleware.AuthMiddleware(), handlers.UpdateProfile)

		// Follow graph
		users.POST("/:id/follow", middleware.AuthMiddleware(), handlers.FollowUser)
		users.POST("/:id/unfollow", middleware.AuthMiddleware(), handlers.UnfollowUser)
		users.GET("/:id/is-following", middleware.AuthMiddleware(), handlers.IsFollowing)
		users.GET("/:id/follow-stats", middleware.AuthMiddleware(), handlers.GetFollowStats)

		// Public profile lookup by username (wildcard last)
		users.GET("/:id", handlers.GetUserByUsername)
	}
}
