package handler

import (
	"errors"
	"strconv"

	"foodscroll-go/internal/api/response"
	"foodscroll-go/internal/service"
	"foodscroll-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parsePagination 读取 page 与 limit（兼容 page_size），非法值交给业务层回退默认值
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))

	sizeParam := c.Query("limit")
	if sizeParam == "" {
		sizeParam = c.Query("page_size")
	}
	pageSize, _ := strconv.Atoi(sizeParam)

	return page, pageSize
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// handleUnexpectedError 存储不可用返回 503，其余记录日志后返回 500
func handleUnexpectedError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		logger.Warn(op+" failed: store unavailable", zap.Error(err))
		response.ServiceUnavailable(c, service.ErrStoreUnavailable.Error())
		return
	}
	logger.Error(op+" failed", zap.Error(err))
	response.InternalError(c, "操作失败，请稍后重试")
}
