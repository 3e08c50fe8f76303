package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/jwt"
	"github.com/sromero1905/elearningfront/pkg/metrics"
	"github.com/sromero1905/elearningfront/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试辅助 ──

func newTestSessions() (*session.Manager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	sessCfg := &config.SessionConfig{Secret: "middleware-test-secret-0123456789", TTL: time.Hour}
	mgr := session.NewManager(store, jwt.NewManager(sessCfg),
		session.NewCookieOptions(&config.CookieConfig{Name: "portal_test"}), zap.NewNop())
	return mgr, store
}

// guardedRouter 受保护路由；handlerRan 记录 Handler 是否执行
func guardedRouter(sessions *session.Manager, m *metrics.Metrics, handlerRan *bool) *gin.Engine {
	r := gin.New()
	r.GET("/home/:id", SessionGuard(sessions, m, zap.NewNop()), func(c *gin.Context) {
		*handlerRan = true
		rec := c.MustGet(SessionKey).(*session.Record)
		c.String(http.StatusOK, rec.Token)
	})
	return r
}

func requestWithTicket(path, cookieName, ticket string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ticket != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: ticket})
	}
	return req
}

func guardRedirects(t *testing.T, m *metrics.Metrics) int {
	t.Helper()
	n, err := testutil.GatherAndCount(m.Registry(), "elearning_portal_guard_redirects_total")
	if err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	return n
}

// ═══════════════════════════════════════════════════════════
// SessionGuard
// ═══════════════════════════════════════════════════════════

func TestSessionGuard_NoCookie(t *testing.T) {
	sessions, _ := newTestSessions()
	m := metrics.New()
	ran := false
	r := guardedRouter(sessions, m, &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", ""))

	if w.Code != http.StatusFound {
		t.Errorf("期望 302，实际 %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("期望跳转到 /，实际 %q", loc)
	}
	if ran {
		t.Error("未授权时受保护 Handler 不应执行")
	}
	if guardRedirects(t, m) != 1 {
		t.Error("期望记录一次守卫跳转")
	}
}

func TestSessionGuard_ValidSession(t *testing.T) {
	sessions, _ := newTestSessions()
	ticket, _, err := sessions.Open(context.Background(), session.Record{
		Token:    "upstream-token",
		UserData: `{"id":1,"nombre":"Ana"}`,
	})
	if err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}

	ran := false
	r := guardedRouter(sessions, metrics.New(), &ran)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", ticket))

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
	if !ran || w.Body.String() != "upstream-token" {
		t.Errorf("期望 Handler 读取到会话，实际 %q", w.Body.String())
	}
}

func TestSessionGuard_UnauthorizedRecords(t *testing.T) {
	tests := []struct {
		name string
		rec  session.Record
	}{
		{"Token 为空", session.Record{UserData: `{"id":1}`}},
		{"用户数据为空", session.Record{Token: "t"}},
		{"用户数据不是 JSON", session.Record{Token: "t", UserData: "{not json"}},
		{"用户数据为数组", session.Record{Token: "t", UserData: `[1,2]`}},
		{"用户数据为 null", session.Record{Token: "t", UserData: `null`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, _ := newTestSessions()
			ticket, _, err := sessions.Open(context.Background(), tt.rec)
			if err != nil {
				t.Fatalf("创建会话失败: %v", err)
			}

			ran := false
			r := guardedRouter(sessions, metrics.New(), &ran)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", ticket))

			if w.Code != http.StatusFound || ran {
				t.Errorf("期望静默跳转，实际 status=%d ran=%v", w.Code, ran)
			}
			if !strings.Contains(w.Header().Get("Set-Cookie"), "portal_test=;") {
				t.Errorf("期望清除 Cookie，实际 %q", w.Header().Get("Set-Cookie"))
			}
		})
	}
}

func TestSessionGuard_SessionClearedBetweenRequests(t *testing.T) {
	sessions, _ := newTestSessions()
	ctx := context.Background()
	ticket, _, _ := sessions.Open(ctx, session.Record{Token: "t", UserData: `{"id":1}`})

	ran := false
	r := guardedRouter(sessions, metrics.New(), &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", ticket))
	if w.Code != http.StatusOK {
		t.Fatalf("第一次请求期望 200，实际 %d", w.Code)
	}

	// 另一处登出后，已打开的页面在下一次请求时被拦截
	if err := sessions.Close(ctx, ticket); err != nil {
		t.Fatalf("关闭会话失败: %v", err)
	}
	ran = false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", ticket))
	if w.Code != http.StatusFound || ran {
		t.Errorf("会话清除后期望跳转，实际 status=%d ran=%v", w.Code, ran)
	}
}

func TestSessionGuard_ForgedTicket(t *testing.T) {
	sessions, _ := newTestSessions()
	ran := false
	r := guardedRouter(sessions, metrics.New(), &ran)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, requestWithTicket("/home/2", "portal_test", "forged.ticket.value"))
	if w.Code != http.StatusFound || ran {
		t.Errorf("伪造票据期望跳转，实际 status=%d ran=%v", w.Code, ran)
	}
}

// ═══════════════════════════════════════════════════════════
// RateLimit
// ═══════════════════════════════════════════════════════════

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := redis.NewFromRedis(rdb, zap.NewNop())

	r := gin.New()
	r.POST("/login", RateLimit(RedisLimiter(client), 2, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("前两次请求应放行，实际 %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("第三次请求期望 429，实际 %d", codes[2])
	}
}

func TestRateLimit_FailOpen(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(RedisLimiter(nil), 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Redis 不可用时应放行，实际 %d", w.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// RequestID / Metrics / CORS
// ═══════════════════════════════════════════════════════════

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("期望沿用传入的 ID，实际 %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 100))
	r.ServeHTTP(w, req)
	if len(w.Body.String()) != 36 {
		t.Errorf("过长的 ID 应被替换为 UUID，实际 %q", w.Body.String())
	}
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/home/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/home/1", "/home/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	n, err := testutil.GatherAndCount(m.Registry(), "elearning_portal_http_requests_total")
	if err != nil {
		t.Fatalf("读取指标失败: %v", err)
	}
	// /home/:id 200 与 unmatched 404 两个序列
	if n != 2 {
		t.Errorf("期望 2 个序列，实际 %d", n)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://portal.example.com/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求期望 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("白名单来源应允许携带 Cookie")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("非白名单来源不应返回 CORS 头")
	}
}
