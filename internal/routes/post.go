package routes

import (
	"github.com/Karann2002/SnapLink-backend/internal/handlers"
	"github.com/Karann2002/SnapLink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterPostRoutes(r gin.IRouter) {
	posts := r.Group("/posts")
	{
		posts.POST("", middleware.AuthMiddleware(), handlers.CreatePost)
		posts.GET("", middleware.AuthMiddleware(), handlers.ListPosts)
		posts.GET("/mine", middleware.AuthMiddleware(), handlers.ListMyPosts)

		posts.PUT("/like/:postId", middleware.AuthMiddleware(), handlers.ToggleLikePost)
		posts.PUT("/comment/:postId", middleware.AuthMiddleware(), handlers.CommentPost)

		// Public (wildcard last)
		posts.GET("/:id/comments", handlers.GetPostComments)
		posts.GET("/:id", handlers.ListPostsByUsername)
	}
}
