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

// PartnerCatalog 商家主页与资料维护
type PartnerCatalog interface {
	GetPartnerVideos(ctx context.Context, partnerID int64) (*dto.PartnerCatalog, error)
	UpdateProfile(ctx context.Context, principal authz.Principal, partnerID int64, req *dto.PartnerProfileUpdateRequest) (*dto.PartnerProfile, error)
}

type PartnerHandler struct {
	partners PartnerCatalog
}

func NewPartnerHandler(partners PartnerCatalog) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// GetVideos 商家主页
// @Summary 商家主页
// @Description 商家资料与全部视频（公开）
// @Tags 商家
// @Produce json
// @Param id path int true "商家ID"
// @Success 200 {object} response.Response{data=dto.PartnerCatalog} "获取成功"
// @Failure 404 {object} response.ErrorResponse "商家不存在"
// @Router /partners/{id}/videos [get]
func (h *PartnerHandler) GetVideos(c *gin.Context) {
	partnerID, err := parseIDParam(c)
	if err != nil {
		response.BadRequest(c, "无效的商家ID")
		return
	}

	data, err := h.partners.GetPartnerVideos(c.Request.Context(), partnerID)
	if err != nil {
		handlePartnerError(c, err)
		return
	}

	response.OK(c, "获取商家主页成功", data)
}

// UpdateProfile 更新商家资料
// @Summary 更新商家资料
// @Description 只能修改自己的资料；路径不带 id 时修改当前商家
// @Tags 商家
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int false "商家ID"
// @Param body body dto.PartnerProfileUpdateRequest true "资料字段"
// @Success 200 {object} response.Response{data=dto.PartnerProfile} "更新成功"
// @Failure 403 {object} response.ErrorResponse "无权修改"
// @Router /partners/{id}/profile [put]
func (h *PartnerHandler) UpdateProfile(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	partnerID := principal.ID
	if c.Param("id") != "" {
		id, err := parseIDParam(c)
		if err != nil {
			response.BadRequest(c, "无效的商家ID")
			return
		}
		partnerID = id
	}

	var req dto.PartnerProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	profile, err := h.partners.UpdateProfile(c.Request.Context(), principal, partnerID, &req)
	if err != nil {
		handlePartnerError(c, err)
		return
	}

	response.OK(c, "更新商家资料成功", profile)
}

func handlePartnerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPartnerNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrProfileNoPermission):
		response.Forbidden(c, err.Error())
	default:
		handleUnexpectedError(c, "Partner operation", err)
	}
}
