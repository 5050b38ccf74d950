package handler

import (
	"context"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// VideoSearcher 视频搜索
type VideoSearcher interface {
	SearchVideos(ctx context.Context, keyword string, page, pageSize int) (*dto.SearchVideoData, error)
}

type SearchHandler struct {
	search VideoSearcher
}

func NewSearchHandler(search VideoSearcher) *SearchHandler {
	return &SearchHandler{search: search}
}

// SearchVideos 搜索视频
// @Summary 搜索视频
// @Description 标题/描述关键词搜索，ES 不可用时降级到数据库
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索关键词"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.SearchVideoData} "搜索成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Router /videos/search [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	page, pageSize := parsePagination(c)

	data, err := h.search.SearchVideos(c.Request.Context(), req.Keyword, page, pageSize)
	if err != nil {
		handleUnexpectedError(c, "Search videos", err)
		return
	}

	response.OK(c, "搜索成功", data)
}
