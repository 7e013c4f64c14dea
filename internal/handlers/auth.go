package handlers

import (
	"net/http"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/Karann2002/SnapLink-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Username string `json:"username" binding:"required"`
}

type LoginInput struct {
	// Identifier matches email, username, or phone
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	user := models.User{
		Email:    input.Email,
		Username: input.Username,
		FullName: input.FullName,
		Password: string(hashed),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logger.Warn().Err(err).Str("email", input.Email).Msg("Signup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User created")
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login POST /api/auth/login
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Identifier and password are required"})
		return
	}

	var user models.User
	err := database.DB.
		Where("email = ? OR username = ? OR phone = ?", input.Identifier, input.Identifier, input.Identifier).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
			"username": user.Username,
			"phone":    user.Phone,
		},
	})
}
