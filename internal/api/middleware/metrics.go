package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/pkg/metrics"
)

// Metrics HTTP 请求计数与耗时；route 使用路由模板，避免路径参数撑爆标签
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
