package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/metrics"
)

// SessionKey gin.Context 中保存 *session.Record 的键
const SessionKey = "session"

// EntryPath 未登录用户的入口页
const EntryPath = "/"

// SessionGuard 受保护页面的会话守卫
// 每个请求都重新读取会话记录；未授权时清除 Cookie 并 302 跳转到入口页，
// 后续 Handler 不会执行。只检查会话是否存在且完整，不向上游校验 Token。
func SessionGuard(sessions *session.Manager, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket := session.TicketFrom(c.Request, sessions.Cookie())

		rec, err := sessions.Resolve(c.Request.Context(), ticket)
		if err != nil {
			reason := "no_session"
			switch {
			case errors.Is(err, session.ErrNoTicket):
				reason = "no_ticket"
			case !errors.Is(err, session.ErrNotFound):
				reason = "store_error"
				logger.Warn("读取会话失败", zap.Error(err))
			}
			redirectToEntry(c, sessions, m, reason)
			return
		}

		if !session.IsAuthorized(rec) {
			redirectToEntry(c, sessions, m, "unauthorized")
			return
		}

		c.Set(SessionKey, rec)
		c.Next()
	}
}

func redirectToEntry(c *gin.Context, sessions *session.Manager, m *metrics.Metrics, reason string) {
	m.GuardRedirect(reason)
	session.ClearCookie(c.Writer, sessions.Cookie())
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, EntryPath)
	c.Abort()
}
