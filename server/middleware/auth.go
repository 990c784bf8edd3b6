package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthConfig configures the bearer token authentication middleware.
type AuthConfig struct {
	// Validator checks a token string and returns the authenticated
	// username.
	Validator func(token string) (username string, err error)
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
	// Disabled turns the middleware into a pass-through.
	Disabled bool
}

// Auth returns a Gin middleware that validates Bearer tokens using the
// configured Validator. The authenticated username is stored in the Gin
// context under "username".
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Disabled {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		username, err := cfg.Validator(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set("username", username)
		c.Next()
	}
}
