package handlers

import (
	"net/http"
	"strings"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// CreatePost POST /api/posts
// Multipart body: file (image or video), caption, optional tags and
// profilePicUrl snapshot.
func CreatePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	mediaType := "image"
	folder := "snaplink/posts"
	if strings.HasPrefix(contentType, "video") {
		mediaType = "video"
		folder = "snaplink/reels"
	}

	url, err := uploadToStorage(c.Request.Context(), file, header, folder)
	if err != nil {
		logger.Error().Err(err).Msg("Post media upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	var tags pq.StringArray
	for _, t := range strings.Split(c.PostForm("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	post := models.Post{
		AuthorID:            userID,
		Caption:             c.PostForm("caption"),
		MediaURL:            url,
		MediaType:           mediaType,
		Tags:                tags,
		AuthorProfilePicURL: c.PostForm("profilePicUrl"),
	}
	if err := database.DB.Create(&post).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// ListPosts GET /api/posts
func ListPosts(c *gin.Context) {
	var posts []models.Post
	if err := database.DB.Preload("Author").Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListMyPosts GET /api/posts/mine
func ListMyPosts(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var posts []models.Post
	if err := database.DB.Preload("Author").Where("author_id = ?", userID).Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListPostsByUsername GET /api/posts/:id (the wildcard carries a
// username here; it shares the segment with the comments route)
func ListPostsByUsername(c *gin.Context) {
	var user models.User
	if err := database.DB.Where("username = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []models.Post
	if err := database.DB.Preload("Author").Where("author_id = ?", user.ID).Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ToggleLikePost PUT /api/posts/like/:postId
func ToggleLikePost(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("postId")

	var post models.Post
	if err := database.DB.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var existing models.PostLike
	alreadyLiked := database.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error == nil

	if alreadyLiked {
		database.DB.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	} else {
		if err := database.DB.Create(&models.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating likes"})
			return
		}
		// Only a fresh like notifies the author; unliking stays silent.
		if post.AuthorID != userID {
			createNotification(models.Notification{
				RecipientID: post.AuthorID,
				SenderID:    userID,
				Type:        models.NotificationTypeLike,
				PostID:      &post.ID,
			})
		}
	}

	var likerIDs []string
	database.DB.Model(&models.PostLike{}).Where("post_id = ?", postID).Pluck("user_id", &likerIDs)

	message := "Liked"
	if alreadyLiked {
		message = "Unliked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "likes": likerIDs})
}

type commentInput struct {
	Text                     string `json:"text" binding:"required"`
	UserCommentProfilePicURL string `json:"userCommentProfilePicUrl"`
}

// CommentPost PUT /api/posts/comment/:postId
func CommentPost(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	postID := c.Param("postId")

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment text is required"})
		return
	}

	var post models.Post
	if err := database.DB.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:                   postID,
		UserID:                   userID,
		Text:                     input.Text,
		UserCommentProfilePicURL: input.UserCommentProfilePicURL,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating comments"})
		return
	}

	if post.AuthorID != userID {
		var commenter models.User
		database.DB.Select("username").First(&commenter, "id = ?", userID)
		createNotification(models.Notification{
			RecipientID: post.AuthorID,
			SenderID:    userID,
			Type:        models.NotificationTypeComment,
			PostID:      &post.ID,
			Text:        commenter.Username + " commented: \"" + input.Text + "\"",
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment added successfully"})
}

// GetPostComments GET /api/posts/:id/comments
func GetPostComments(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var comments []models.Comment
	if err := database.DB.Preload("User").Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
