package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/pkg/jwt"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// JWTAuth verifies the access token from "Authorization: Bearer <token>".
// Calendar clients cannot send headers, so GET requests may carry the
// token in the access_token query parameter instead.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "token is invalid or expired")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	if c.Request.Method == "GET" {
		return c.Query("access_token")
	}
	return ""
}

// RoleAuth lets the request through when the caller has one of the roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, response.CodeUnauthorized, "not authenticated")
			c.Abort()
			return
		}

		userRole, _ := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "permission denied")
		c.Abort()
	}
}
