package handlers

import (
	"net/http"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Search GET /api/search?q=...
// Case-insensitive substring match over usernames, captions, and tags,
// 10 results per bucket.
func Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	pattern := "%" + query + "%"

	var users []models.User
	if err := database.DB.Where("username ILIKE ?", pattern).Limit(10).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("Author").Where("caption ILIKE ?", pattern).Limit(10).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	var tagged []models.Post
	if err := database.DB.Preload("Author").
		Where("array_to_string(tags, ',') ILIKE ?", pattern).
		Limit(10).
		Find(&tagged).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"posts": posts,
		"tags":  tagged,
	})
}
