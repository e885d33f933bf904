package middleware

import (
	"net/http"
	"strings"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextViewerKey = "viewer"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		userRep := &redis.UserRepository{}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		// redis校验是否是正确的token
		originToken, err := userRep.GetUserToken(claims.UserID)
		if err != nil || originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Account has been logging elsewhere"})
			c.Abort()
			return
		}

		// 校验通过后更新过期时间
		if err = userRep.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		role := model.Role(claims.Role)
		if !role.Valid() {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid role claim"})
			c.Abort()
			return
		}

		// 注入 viewer（id + 角色），业务层只认它
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextViewerKey, model.Viewer{ID: claims.UserID, Role: role})
		c.Next()
	}
}
