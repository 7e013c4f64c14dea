package handlers

import (
	"net/http"
	"time"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/services"
	apperrors "github.com/Karann2002/SnapLink-backend/pkg/errors"
	"github.com/Karann2002/SnapLink-backend/pkg/utils"
	"github.com/gin-gonic/gin"
)

// SendMessage POST /api/messages
// Body: {sender, receiver, text}. Responds 201 with the persisted
// message and the resulting conversation snapshot.
func SendMessage(c *gin.Context) {
	var input services.SendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	// Per-sender limit on top of the per-IP middleware limit; fails
	// open when redis is unavailable.
	if ok, _ := database.CheckMessageRateLimit(input.Sender, 30, time.Minute); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, slow down"})
		return
	}

	msg, conv, err := services.SendMessage(c.Request.Context(), input)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      msg,
		"conversation": conv,
	})
}

// GetMessages GET /api/messages/:sender/:receiver
// Full history between the two users, both directions, oldest first.
func GetMessages(c *gin.Context) {
	messages, err := services.History(c.Request.Context(), c.Param("sender"), c.Param("receiver"))
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetConversations GET /api/conversations/:userId
func GetConversations(c *gin.Context) {
	userID := c.Param("userId")

	if !utils.IsUUID(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}

	summaries, err := services.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
