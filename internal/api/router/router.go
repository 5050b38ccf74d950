package router

import (
	"net/http"

	"foodscroll-go/internal/api/handler"
	"foodscroll-go/internal/api/middleware"
	"foodscroll-go/internal/authz"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Video      *handler.VideoHandler
	Engagement *handler.EngagementHandler
	Comment    *handler.CommentHandler
	Partner    *handler.PartnerHandler
	Search     *handler.SearchHandler
}

// Options 认证与限流配置
type Options struct {
	JWTSecret string
	JWTIssuer string
	// WriteLimit 为 nil 时不限流
	WriteLimit gin.HandlerFunc
}

// Setup 注册所有业务路由
func Setup(r *gin.Engine, h Handlers, opts Options) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.AuthRequired(opts.JWTSecret, opts.JWTIssuer)
	can := middleware.RequireCapability
	// 写操作：先校验能力，再按调用方限流
	write := func(capability authz.Capability, h gin.HandlerFunc) []gin.HandlerFunc {
		chain := []gin.HandlerFunc{can(capability)}
		if opts.WriteLimit != nil {
			chain = append(chain, opts.WriteLimit)
		}
		return append(chain, h)
	}

	v1 := r.Group("/api/v1")

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("/search", h.Search.SearchVideos)
		videos.GET("/:id/comments", h.Comment.ListByVideo)

		// 用户接口
		viewer := videos.Group("", auth)
		{
			viewer.GET("/feed", can(authz.CapViewFeed), h.Video.GetFeed)
			viewer.GET("/saved", can(authz.CapViewFeed), h.Video.ListSaved)
			viewer.PUT("/:id/like", write(authz.CapEngage, h.Engagement.ToggleLike)...)
			viewer.POST("/:id/save", write(authz.CapEngage, h.Engagement.ToggleSave)...)
			viewer.POST("/:id/comments", write(authz.CapComment, h.Comment.Create)...)

			// 商家接口
			viewer.POST("", can(authz.CapPublishVideo), h.Video.Create)
			viewer.PUT("/:id/order-link", can(authz.CapPublishVideo), h.Video.SetOrderLink)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments", auth)
	{
		comments.DELETE("/:id", write(authz.CapComment, h.Comment.Delete)...)
	}

	// --- 商家模块 ---
	partners := v1.Group("/partners")
	{
		partners.GET("/:id/videos", h.Partner.GetVideos)

		partnerAuth := partners.Group("", auth, can(authz.CapManageProfile))
		{
			partnerAuth.PUT("/profile", h.Partner.UpdateProfile)
			partnerAuth.PUT("/:id/profile", h.Partner.UpdateProfile)
		}
	}
}
