package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createPost(t *testing.T, authorID, caption string) models.Post {
	t.Helper()
	post := models.Post{AuthorID: authorID, Caption: caption, MediaURL: "https://cdn.example.com/x.jpg"}
	if err := database.DB.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestToggleLikePost(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	post := createPost(t, alice.ID, "sunset")

	like := func(userID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest("PUT", "/api/posts/like/"+post.ID, nil)
		c.Params = gin.Params{{Key: "postId", Value: post.ID}}
		c.Set("userId", userID)
		ToggleLikePost(c)
		return w
	}

	w := like(bob.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string   `json:"message"`
		Likes   []string `json:"likes"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Liked", response.Message)
	assert.Equal(t, []string{bob.ID}, response.Likes)

	// liking someone else's post notifies the author
	var notifications int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", alice.ID, models.NotificationTypeLike).
		Count(&notifications)
	assert.Equal(t, int64(1), notifications)

	// second call unlikes, no extra notification
	w = like(bob.ID)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Unliked", response.Message)
	assert.Empty(t, response.Likes)

	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", alice.ID, models.NotificationTypeLike).
		Count(&notifications)
	assert.Equal(t, int64(1), notifications)
}

func TestLikeOwnPostDoesNotNotify(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	post := createPost(t, alice.ID, "me")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/posts/like/"+post.ID, nil)
	c.Params = gin.Params{{Key: "postId", Value: post.ID}}
	c.Set("userId", alice.ID)
	ToggleLikePost(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var notifications int64
	database.DB.Model(&models.Notification{}).Count(&notifications)
	assert.Zero(t, notifications)
}

func TestCommentPost(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	post := createPost(t, alice.ID, "coffee")

	body, _ := json.Marshal(map[string]string{"text": "nice shot"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/posts/comment/"+post.ID, bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "postId", Value: post.ID}}
	c.Set("userId", bob.ID)
	CommentPost(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	database.DB.Where("post_id = ?", post.ID).Find(&comments)
	assert.Len(t, comments, 1)
	assert.Equal(t, "nice shot", comments[0].Text)

	var notification models.Notification
	assert.NoError(t, database.DB.Where("recipient_id = ?", alice.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeComment, notification.Type)
	assert.Contains(t, notification.Text, "bob commented")
}

func TestCommentMissingText(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	post := createPost(t, alice.ID, "x")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/api/posts/comment/"+post.ID, bytes.NewBufferString("{}"))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "postId", Value: post.ID}}
	c.Set("userId", alice.ID)
	CommentPost(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostComments(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	post := createPost(t, alice.ID, "y")

	base := time.Now().Add(-time.Minute)
	database.DB.Create(&models.Comment{PostID: post.ID, UserID: bob.ID, Text: "first", CreatedAt: base})
	database.DB.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Text: "second", CreatedAt: base.Add(time.Second)})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/posts/"+post.ID+"/comments", nil)
	c.Params = gin.Params{{Key: "id", Value: post.ID}}
	GetPostComments(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
}
