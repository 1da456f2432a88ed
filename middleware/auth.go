package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"tripdesk/models"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token and checks the auth cache for
// revocation. If Redis is unavailable a valid signature is accepted on its
// own, favoring availability.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Insufficient authorization",
			})
			return
		}

		// Check the revocation cache. A cached hash that does not match
		// means the token was superseded by a newer login.
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cacheKey := utils.AuthCachePrefix + userID
			cachedHash, err := authCache.Get(context.Background(), cacheKey).Result()
			switch {
			case err == nil:
				if cachedHash != utils.HashToken(tokenString) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"success": false,
						"error":   "Token revoked",
					})
					return
				}
				_ = authCache.Expire(context.Background(), cacheKey, utils.AuthCacheTTL).Err()
			case err == redis.Nil:
				// No cached hash: either the token was revoked or the
				// session sat idle past the cache TTL. Both require a
				// fresh login.
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Session expired",
				})
				return
			default:
				log.Printf("WARNING: auth cache unavailable, accepting signed token: %v", err)
			}
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireAdmin allows only admin accounts past. Must run after
// JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Admin access required",
			})
			return
		}
		c.Next()
	}
}
