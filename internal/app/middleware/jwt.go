package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manjito26/ESTOP-System/internal/domain/models"
	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/error/code"
	"github.com/manjito26/ESTOP-System/internal/error/response"
	"github.com/manjito26/ESTOP-System/pkg/logger"
)

var (
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
)

// InitAuthMiddleware initializes the authentication middleware
func InitAuthMiddleware(jwt services.InterfaceJWTService, redis services.InterfaceRedisService) {
	jwtService = jwt
	redisService = redis
}

// extractToken strips the "Bearer " prefix from an Authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// Authenticate validates the bearer token and stashes the caller's
// identity in the request context. It does NOT authorize: role checks
// happen in the services, against the permission table, per request.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token: "+err.Error(), nil)
			c.Abort()
			return
		}

		// Revoked tokens (logout) are rejected. A Redis outage fails
		// open with a warning rather than locking everyone out.
		if redisService != nil && claims.ID != "" {
			revoked, err := redisService.IsTokenBlacklisted(claims.ID)
			if err != nil {
				logger.Warning("Token blacklist check failed: %v", err)
			} else if revoked {
				response.FailWithMessage(c, code.ErrTokenInvalid, "Token has been revoked", nil)
				c.Abort()
				return
			}
		}

		c.Set("username", claims.Username)
		c.Set("role", string(claims.Role))
		c.Set("claims", claims)
		c.Next()
	}
}

// CurrentActor extracts the authenticated identity from the request
// context
func CurrentActor(c *gin.Context) services.Actor {
	return services.Actor{
		Username: c.GetString("username"),
		Role:     models.Role(c.GetString("role")),
	}
}
