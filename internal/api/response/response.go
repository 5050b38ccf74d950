package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyRequestID 请求 ID 在 gin.Context 中的键，由 RequestID 中间件写入
const ContextKeyRequestID = "requestID"

// 错误类型，与 HTTP 状态码一一对应
const (
	TypeBadRequest         = "BadRequest"
	TypeUnauthorized       = "Unauthorized"
	TypeForbidden          = "Forbidden"
	TypeNotFound           = "NotFound"
	TypeTooManyRequests    = "TooManyRequests"
	TypeInternal           = "InternalServerError"
	TypeServiceUnavailable = "ServiceUnavailable"
)

// Response 统一成功响应
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorInfo 错误详情，request_id 用于和服务端日志对照
type ErrorInfo struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

func OK(c *gin.Context, message string, data interface{}) {
	success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	success(c, http.StatusCreated, message, data)
}

func success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail 写入错误响应，不会中断处理链，中间件中需要自行 Abort
func Fail(c *gin.Context, statusCode int, errType string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorInfo{
			Code:      statusCode,
			Message:   message,
			Type:      errType,
			RequestID: c.GetString(ContextKeyRequestID),
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, TypeBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, TypeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, TypeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, TypeNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, TypeTooManyRequests, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, TypeInternal, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Fail(c, http.StatusServiceUnavailable, TypeServiceUnavailable, message)
}
