package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jabaapp/user-service/pkg/helpers"
	"github.com/jabaapp/user-service/pkg/response"
)

// Auth validates the bearer token and sets userID and userLogin in the
// Gin context on success.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userLogin", claims.Login)
		c.Next()
	}
}
