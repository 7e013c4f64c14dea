package handlers

import (
	"net/http"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/Karann2002/SnapLink-backend/internal/services"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// createNotification persists a notification row and pushes it to the
// recipient's connections. Persistence failures are logged, never
// propagated: a missing notification must not fail the action that
// produced it.
func createNotification(n models.Notification) {
	if err := database.DB.Create(&n).Error; err != nil {
		logger.Error().Err(err).Str("recipient", n.RecipientID).Msg("Failed to create notification")
		return
	}

	var full models.Notification
	if err := database.DB.Preload("Sender").Preload("Post").First(&full, "id = ?", n.ID).Error; err != nil {
		full = n
	}

	if services.Push != nil {
		services.Push(n.RecipientID, "getNotification", full)
	}
}

// GetNotifications GET /api/notifications
func GetNotifications(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var notifications []models.Notification
	err := database.DB.
		Preload("Sender").
		Preload("Post").
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead PUT /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var notification models.Notification
	if err := database.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.RecipientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	notification.IsRead = true
	database.DB.Save(&notification)

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
