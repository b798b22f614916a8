package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gramvaani/gramvaani-api/internal/logger"
	"github.com/gramvaani/gramvaani-api/internal/repository"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"github.com/gramvaani/gramvaani-api/internal/util"
	"go.uber.org/zap"
)

// UserHandler is the handler for account-related requests.
type UserHandler struct {
	Service *service.UserService
}

// NewUserHandler is the constructor function for initializing a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{Service: userService}
}

// Signup registers a new user and logs them in.
func (h *UserHandler) Signup(c *gin.Context) {
	var newUser struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Language string `json:"language"`
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&newUser); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password fields are required"})
		return
	}

	user, err := h.Service.Signup(newUser.Email, newUser.Password, newUser.Language, newUser.Location)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.issueTokens(c, user.Email, "User signed up successfully")
}

// Login authenticates a user and issues tokens.
func (h *UserHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	user, err := h.Service.Login(credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.issueTokens(c, user.Email, "User logged in successfully")
}

// issueTokens writes the access/refresh token pair response.
func (h *UserHandler) issueTokens(c *gin.Context, email, message string) {
	secret := h.Service.Cfg.EnvVars.JwtSecretKey

	accessToken, err := generateAccessToken(email, secret)
	if err != nil {
		logger.Get().Error("failed to generate access token", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	refreshToken, err := generateRefreshToken(email, secret)
	if err != nil {
		logger.Get().Error("failed to generate refresh token", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"message":       message,
	})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := util.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":    user.Email,
		"language": user.Language,
		"location": user.Location,
	})
}

// generateAccessToken generates a short-lived JWT access token for a user.
func generateAccessToken(email, secretKey string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"exp":  time.Now().Add(30 * time.Minute).Unix(),
		"iat":  time.Now().Unix(),
		"type": "access",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("generateAccessToken: %v", err)
	}
	return tokenString, nil
}

// generateRefreshToken generates a long-lived JWT refresh token for a user.
func generateRefreshToken(email, secretKey string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"exp":  time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
		"type": "refresh",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("generateRefreshToken: %v", err)
	}
	return tokenString, nil
}

// RefreshToken validates a refresh token and issues a new access token.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	claims := jwt.MapClaims{}
	secret := h.Service.Cfg.EnvVars.JwtSecretKey
	token, err := jwt.ParseWithClaims(request.RefreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token type"})
		return
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid subject in token"})
		return
	}

	// The account must still exist for the refresh to succeed
	if _, err := h.Service.GetUserByEmail(email); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, err := generateAccessToken(email, secret)
	if err != nil {
		logger.Get().Error("failed to generate access token on refresh", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "token_type": "bearer"})
}
