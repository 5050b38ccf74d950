package middleware

import (
	"fmt"
	"strconv"

	"foodscroll-go/internal/api/response"
	"foodscroll-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

const rateLimitPrefix = "foodscroll:ratelimit"

// NewRateLimiter 构造限流器，rate 形如 "60-M"
// client 为 nil 时使用进程内存储（单实例或测试）
func NewRateLimiter(rate string, client *redis.Client) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	return limiter.New(store, r), nil
}

// RateLimit 按调用方身份限流，未认证请求按 IP
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return mgin.NewMiddleware(l,
		mgin.WithKeyGetter(rateLimitKey),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			response.TooManyRequests(c, "操作过于频繁，请稍后再试")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// 限流存储故障时放行
			logger.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
		}),
	)
}

func rateLimitKey(c *gin.Context) string {
	if p, ok := GetPrincipal(c); ok {
		return string(p.Role) + ":" + strconv.FormatInt(p.ID, 10)
	}
	return "ip:" + c.ClientIP()
}
