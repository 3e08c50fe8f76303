package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/pkg/redis"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// RateLimiter 滑动窗口限流能力（由 pkg/redis.Client 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按客户端 IP 与路由限流
// limiter 为 nil 或 limit<=0 时不限流；Redis 出错时降级放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("限流检查失败，降级放行", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, 10004, "Demasiados intentos. Por favor, espera un momento.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RedisLimiter 把可能为 nil 的 *redis.Client 转换为 RateLimiter，
// 避免 nil 指针被包装成非 nil 接口
func RedisLimiter(client *redis.Client) RateLimiter {
	if client == nil {
		return nil
	}
	return client
}
