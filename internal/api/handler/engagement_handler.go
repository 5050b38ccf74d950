package handler

import (
	"context"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/api/middleware"
	"foodscroll-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// EngagementToggler 点赞/收藏切换
type EngagementToggler interface {
	ToggleLike(ctx context.Context, userID, videoID int64) (*dto.ToggleResult, error)
	ToggleSave(ctx context.Context, userID, videoID int64) (*dto.ToggleResult, error)
}

type EngagementHandler struct {
	engagement EngagementToggler
}

func NewEngagementHandler(engagement EngagementToggler) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞/取消点赞
// @Description 已点赞则取消，未点赞则点赞，返回切换后的状态和计数
// @Tags 互动
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "操作成功，data 为 {liked, count}"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Failure 429 {object} response.ErrorResponse "操作过于频繁"
// @Router /videos/{id}/like [put]
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	res, err := h.engagement.ToggleLike(c.Request.Context(), principal.ID, videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	message := "取消点赞成功"
	if res.Active {
		message = "点赞成功"
	}
	response.OK(c, message, gin.H{
		"liked": res.Active,
		"count": res.Count,
	})
}

// ToggleSave 收藏/取消收藏
// @Summary 收藏/取消收藏
// @Tags 互动
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response "操作成功，data 为 {saved, count}"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/save [post]
func (h *EngagementHandler) ToggleSave(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	res, err := h.engagement.ToggleSave(c.Request.Context(), principal.ID, videoID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	message := "取消收藏成功"
	if res.Active {
		message = "收藏成功"
	}
	response.OK(c, message, gin.H{
		"saved": res.Active,
		"count": res.Count,
	})
}
