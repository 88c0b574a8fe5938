package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloggyhq/bloggy/pkg/helpers"
	"github.com/bloggyhq/bloggy/pkg/response"
)

// Auth gates a route on the Authorization header. A missing header is a 401,
// a header that fails verification is a 403. On success the token claims are
// stored in the Gin context under "claims".
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "Unauthorized token")
			return
		}
		claims, err := jwt.Parse(raw)
		if err != nil {
			response.AbortMessage(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
