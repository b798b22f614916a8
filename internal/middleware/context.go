package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramvaani/gramvaani-api/internal/service"
	"github.com/gramvaani/gramvaani-api/internal/util"
)

// AttachUserToContext loads the authenticated user's account and attaches it
// to the context. Requests whose token subject no longer matches a stored
// account are rejected.
func AttachUserToContext(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := util.GetUserEmailFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		user, err := userService.GetUserByEmail(email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
