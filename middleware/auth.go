package middleware

import (
	"net/http"
	"strings"

	"chirp/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AuthRequired validates the bearer token and stores the requester's
// user ID on the context. Websocket upgrades carry the token as a query
// parameter since browsers cannot set headers on websocket connections.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if websocket.IsWebSocketUpgrade(c.Request) {
			token = c.Query("token")
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = authHeader[7:]
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := utils.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
