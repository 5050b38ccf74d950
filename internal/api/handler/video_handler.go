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

// FeedReader 视频流读取
type FeedReader interface {
	GetFeed(ctx context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error)
	ListSaved(ctx context.Context, viewerID int64, page, pageSize int) (*dto.FeedData, error)
}

// VideoPublisher 商家视频发布
type VideoPublisher interface {
	AddVideo(ctx context.Context, principal authz.Principal, req *dto.VideoCreateRequest) (*dto.VideoInfo, error)
	SetOrderLink(ctx context.Context, principal authz.Principal, videoID int64, link string) (*dto.VideoInfo, error)
}

type VideoHandler struct {
	feed   FeedReader
	videos VideoPublisher
}

func NewVideoHandler(feed FeedReader, videos VideoPublisher) *VideoHandler {
	return &VideoHandler{feed: feed, videos: videos}
}

// GetFeed 视频流
// @Summary 视频流
// @Description 按发布时间倒序分页，带当前用户的点赞/收藏状态。videos 为空表示没有更多
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量，最大 50" default(10)
// @Success 200 {object} response.Response{data=dto.FeedData} "获取成功"
// @Failure 401 {object} response.ErrorResponse "未认证"
// @Failure 503 {object} response.ErrorResponse "存储不可用"
// @Router /videos/feed [get]
func (h *VideoHandler) GetFeed(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page, pageSize := parsePagination(c)

	data, err := h.feed.GetFeed(c.Request.Context(), principal.ID, page, pageSize)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取视频流成功", data)
}

// ListSaved 我收藏的视频
// @Summary 我收藏的视频
// @Tags 视频
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=dto.FeedData} "获取成功"
// @Router /videos/saved [get]
func (h *VideoHandler) ListSaved(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page, pageSize := parsePagination(c)

	data, err := h.feed.ListSaved(c.Request.Context(), principal.ID, page, pageSize)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "获取收藏列表成功", data)
}

// Create 商家发布视频
// @Summary 发布视频
// @Description 视频文件已由上传服务写入对象存储，这里登记元数据
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VideoCreateRequest true "视频信息"
// @Success 201 {object} response.Response{data=dto.VideoInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "参数无效或资源不存在"
// @Failure 403 {object} response.ErrorResponse "非商家"
// @Router /videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.VideoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	info, err := h.videos.AddVideo(c.Request.Context(), principal, &req)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.Created(c, "发布视频成功", info)
}

// SetOrderLink 更新外部下单链接
// @Summary 更新下单链接
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "视频ID"
// @Param body body dto.OrderLinkRequest true "下单链接"
// @Success 200 {object} response.Response{data=dto.VideoInfo} "更新成功"
// @Failure 404 {object} response.ErrorResponse "视频不存在或不属于当前商家"
// @Router /videos/{id}/order-link [put]
func (h *VideoHandler) SetOrderLink(c *gin.Context) {
	videoID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.OrderLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	principal, _ := middleware.GetPrincipal(c)

	info, err := h.videos.SetOrderLink(c.Request.Context(), principal, videoID, req.ExternalOrderLink)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	response.OK(c, "更新下单链接成功", info)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidAsset):
		response.BadRequest(c, err.Error())
	default:
		handleUnexpectedError(c, "Video operation", err)
	}
}
