package handlers

import (
	"net/http"
	"time"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ListUsers GET /api/users
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetProfile GET /api/users/profile
func GetProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile PUT /api/users/profile/update
// Multipart body: fullName, gender, bio, optional profilePic file.
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	updates := map[string]interface{}{
		"full_name": c.PostForm("fullName"),
		"gender":    c.PostForm("gender"),
		"bio":       c.PostForm("bio"),
	}

	if file, header, err := c.Request.FormFile("profilePic"); err == nil {
		defer file.Close()
		url, err := uploadToStorage(c.Request.Context(), file, header, "snaplink/profiles")
		if err != nil {
			logger.Error().Err(err).Msg("Profile picture upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
			return
		}
		updates["profile_pic_url"] = url
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var user models.User
	database.DB.First(&user, "id = ?", userID)
	c.JSON(http.StatusOK, user)
}

// GetUserByUsername GET /api/users/:id (the wildcard carries a
// username; it shares the segment with the follow routes)
func GetUserByUsername(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// FollowUser POST /api/users/:id/follow
func FollowUser(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	if targetID == currentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You can't follow yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var existing models.Follow
	if err := database.DB.Where("follower_id = ? AND followee_id = ?", currentUserID, targetID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already following this user"})
		return
	}

	follow := models.Follow{FollowerID: currentUserID, FolloweeID: targetID, CreatedAt: time.Now()}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to follow user"})
		return
	}

	database.CacheInvalidate(followStatsKey(targetID), followStatsKey(currentUserID))

	c.JSON(http.StatusOK, gin.H{"message": "Followed successfully"})
}

// UnfollowUser POST /api/users/:id/unfollow
func UnfollowUser(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)
	targetID := c.Param("id")

	var target models.User
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	database.DB.Where("follower_id = ? AND followee_id = ?", currentUserID, targetID).Delete(&models.Follow{})
	database.CacheInvalidate(followStatsKey(targetID), followStatsKey(currentUserID))

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// IsFollowing GET /api/users/:id/is-following
func IsFollowing(c *gin.Context) {
	currentUserID := c.MustGet("userId").(string)

	var count int64
	database.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", currentUserID, c.Param("id")).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"isFollowing": count > 0})
}

type followStats struct {
	FollowersCount int64 `json:"followersCount"`
	FollowingCount int64 `json:"followingCount"`
}

func followStatsKey(userID string) string {
	return "follow_stats:" + userID
}

// GetFollowStats GET /api/users/:id/follow-stats
func GetFollowStats(c *gin.Context) {
	targetID := c.Param("id")

	var cached followStats
	if err := database.CacheGet(followStatsKey(targetID), &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var stats followStats
	database.DB.Model(&models.Follow{}).Where("followee_id = ?", targetID).Count(&stats.FollowersCount)
	database.DB.Model(&models.Follow{}).Where("follower_id = ?", targetID).Count(&stats.FollowingCount)

	database.CacheSet(followStatsKey(targetID), stats, 5*time.Minute)

	c.JSON(http.StatusOK, stats)
}
