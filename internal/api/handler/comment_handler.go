package handler

import (
	"context"
	"errors"

	"foodscroll-go/internal/api/dto"
	"foodscroll-go/internal/api/middleware"
	"foodscroll-go/internal/api/response"
	"foodscroll-go/internal/authz"
	"foodscroll-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentLedger 评论读写
type CommentLedger interface {
	AddComment(ctx context.Context, userID, videoID int64, text string) (*dto.CommentInfo, error)
	DeleteComment(ctx context.Context, principal authz.Principal, commentID int64) error
	ListComments(ctx context.Context, videoID int64) (*dto.CommentListData, error)
}

type CommentHandler struct {
	comments CommentLedger
}

func NewCommentHandler(comments CommentLedger) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param body body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Response{data=dto.CommentInfo} "发表成功"
// @Failure 400 {object} response.ErrorResponse "内容为空"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	info, err := h.comments.AddComment(c.Request.Context(), principal.ID, videoID, req.Text)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "发表评论成功", info)
}

// Delete 删除评论（仅作者）
// @Summary 删除评论
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "不是评论作者"
// @Failure 404 {object} response.ErrorResponse "评论不存在"
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	if err := h.comments.DeleteComment(c.Request.Context(), principal, commentID); err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "删除评论成功", nil)
}

// ListByVideo 视频评论列表
// @Summary 视频评论列表
// @Description 新的在前，带作者昵称
// @Tags 评论
// @Produce json
// @Param id path int true "视频ID"
// @Success 200 {object} response.Response{data=dto.CommentListData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在"
// @Router /videos/{id}/comments [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	data, err := h.comments.ListComments(c.Request.Context(), videoID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	default:
		handleUnexpectedError(c, "Comment operation", err)
	}
}
