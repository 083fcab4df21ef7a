package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Role 请求方角色，数值越大权限越高.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAnalyst
	RoleAdmin
)

// RoleHeader 上游网关注入的角色请求头.
const RoleHeader = "X-Role"

// String 返回角色的字符串表示.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAnalyst:
		return "analyst"
	case RoleUser:
		fallthrough
	default:
		return "user"
	}
}

type roleKey struct{}

// parseRole 从字符串解析角色，未知值降级为 user.
func parseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "analyst":
		return RoleAnalyst
	default:
		return RoleUser
	}
}

// RoleMiddleware 解析 X-Role 并注入到 gin.Context 和 request.Context，缺省角色为 user.
func RoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := parseRole(c.GetHeader(RoleHeader))
		c.Set("role", r)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), roleKey{}, r))
		c.Next()
	}
}

// GetRole 获取当前请求角色.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(Role); ok {
			return r
		}
	}

	if r, ok := c.Request.Context().Value(roleKey{}).(Role); ok {
		return r
	}

	return RoleUser
}

// RequireMinRole 要求最小角色，不满足则返回 403.
func RequireMinRole(minRole Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) < minRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}

		c.Next()
	}
}
