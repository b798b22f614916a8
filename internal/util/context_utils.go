package util

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/models"
)

// GetUserFromContext gets the user from the context.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	val, ok := c.Get("user")
	if !ok {
		return nil, errors.New("no user information")
	}

	user, ok := val.(*models.User)
	if !ok || user == nil {
		return nil, errors.New("user information is of the wrong type")
	}

	return user, nil
}

// GetUserEmailFromContext gets the authenticated user's email from the context.
func GetUserEmailFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get("user_email")
	if !ok {
		return "", errors.New("no user email information")
	}

	email, ok := val.(string)
	if !ok {
		return "", errors.New("user email information is of the wrong type")
	}

	return email, nil
}
