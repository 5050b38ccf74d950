package middleware

import (
	"strings"

	"foodscroll-go/internal/api/response"
	"foodscroll-go/internal/authz"
	"foodscroll-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

const ContextKeyPrincipal = "currentPrincipal"

// AuthRequired JWT 认证中间件，要求请求必须携带有效 Token
// Token 由认证服务签发，claims 中带 user_id 与 role
func AuthRequired(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token, secret, issuer)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		principal := authz.Principal{ID: claims.UserID, Role: authz.Role(claims.Role)}
		if principal.ID <= 0 || !principal.Role.Valid() {
			response.Unauthorized(c, "认证令牌缺少身份信息")
			c.Abort()
			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireCapability 角色权限中间件（必须在 AuthRequired 之后使用）
func RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		if !authz.Can(principal, capability) {
			response.Forbidden(c, "当前角色无权执行该操作")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal 从 Gin Context 中获取当前调用方身份
func GetPrincipal(c *gin.Context) (authz.Principal, bool) {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return authz.Principal{}, false
	}
	principal, ok := val.(authz.Principal)
	return principal, ok
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
