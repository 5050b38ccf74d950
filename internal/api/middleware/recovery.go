package middleware

import (
	"foodscroll-go/internal/api/response"
	"foodscroll-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 捕获 panic，记录调用栈并返回 500
// 处理器已经写出响应时只中断，不再覆盖
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("panic", rec),
				zap.String("request_id", c.GetString(ContextKeyRequestID)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Stack("stack"),
			}
			if p, ok := GetPrincipal(c); ok {
				fields = append(fields, zap.Int64("principal_id", p.ID))
			}
			logger.Error("Panic recovered", fields...)

			if !c.Writer.Written() {
				response.InternalError(c, "服务器内部错误")
			}
			c.Abort()
		}()

		c.Next()
	}
}
