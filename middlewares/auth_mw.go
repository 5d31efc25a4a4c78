package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vipulchandan/BookManagement/utils"
)

// ContextUserID is the gin context key under which the authenticated
// caller's user id is stored. It is the sole source of truth for who is
// making the request; handlers compare it against resource-owner ids,
// never against ids claimed in the request body.
const ContextUserID = "userId"

// AuthMiddleware verifies the x-access-token header and injects the
// caller identity for downstream handlers.
func AuthMiddleware(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("x-access-token")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "No token provided",
			})
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Unauthorized access!",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
