package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/api/handler"
	"github.com/sromero1905/elearningfront/internal/api/middleware"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/metrics"
)

// defaultBodyLimit 未配置 server.body_limit_bytes 时的请求体上限
const defaultBodyLimit = 1 << 20

// Deps 路由依赖
type Deps struct {
	Config   *config.Config
	Handler  *handler.Handler
	Sessions *session.Manager
	Limiter  middleware.RateLimiter // 为 nil 时不限流
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	h := d.Handler
	bodyLimit := d.Config.Server.BodyLimitBytes
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(d.Config.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(bodyLimit))

	// ── 运维 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ── 公开页面 ──
	r.GET("/", h.Auth.Entry)
	r.POST("/login",
		middleware.RateLimit(d.Limiter, d.Config.RateLimit.LoginPerMinute, time.Minute, d.Logger),
		h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.POST("/forgot-password", h.Auth.ForgotPassword)
	r.POST("/reset-password", h.Auth.ResetPassword)

	// ── 受保护页面 ──
	protected := r.Group("")
	protected.Use(middleware.SessionGuard(d.Sessions, d.Metrics, d.Logger))
	{
		home := protected.Group("/home/:id")
		{
			home.GET("", h.Course.Dashboard)
			home.GET("/export.xlsx", h.Export.ProgressReport)
			home.GET("/calendar.ics", h.Export.Calendar)
		}

		protected.GET("/my-profile", h.Profile.Profile)
		protected.GET("/configuration", h.Configuration.Show)
		protected.POST("/configuration/password", h.Configuration.ChangePassword)
		protected.GET("/help", h.Help.Catalog)
		protected.GET("/help/search", h.Help.Search)
	}

	return r
}
