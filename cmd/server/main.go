package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/api/handler"
	"github.com/sromero1905/elearningfront/internal/api/middleware"
	"github.com/sromero1905/elearningfront/internal/api/router"
	"github.com/sromero1905/elearningfront/internal/repository"
	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/backend"
	"github.com/sromero1905/elearningfront/pkg/database"
	"github.com/sromero1905/elearningfront/pkg/jwt"
	applogger "github.com/sromero1905/elearningfront/pkg/logger"
	"github.com/sromero1905/elearningfront/pkg/metrics"
	"github.com/sromero1905/elearningfront/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("PORTAL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：连接失败时会话退回进程内存储，登录不限流）
	var store session.Store
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，会话改用内存存储，登录限流不可用", zap.Error(err))
		rdb = nil
		store = session.NewMemoryStore()
	} else {
		store = session.NewRedisStore(rdb)
	}

	// 4. 帮助中心数据库（可选）
	var (
		db   *gorm.DB
		repo *repository.Repository
	)
	if cfg.Feature.HelpCenterEnabled {
		db, err = database.NewDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		logger.Info("数据库连接成功")

		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		repo = repository.NewRepository(db)
	}

	// 5. 指标、上游客户端、会话
	m := metrics.New()
	api := backend.NewClient(&cfg.Upstream, logger, m)
	sessions := session.NewManager(store, jwt.NewManager(&cfg.Session),
		session.NewCookieOptions(&cfg.Session.Cookie), logger)

	// 6. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, repo, api, sessions, m, logger)
	h := handler.NewHandler(svc, sessions, logger)

	// 7. 初始化路由
	engine := router.Setup(router.Deps{
		Config:   cfg,
		Handler:  h,
		Sessions: sessions,
		Limiter:  middleware.RedisLimiter(rdb),
		Metrics:  m,
		Logger:   logger,
	})

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if db != nil {
		if closeDB, _ := db.DB(); closeDB != nil {
			closeDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
