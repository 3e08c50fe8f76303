package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/backend"
	"github.com/sromero1905/elearningfront/pkg/jwt"
)

// ── Mock Backend ──

type mockBackend struct {
	mu sync.Mutex

	loginResult *backend.LoginResult
	loginErr    error
	loginEmail  string

	forgotErr error
	resetMsg  string
	resetErr  error

	changeErr   error
	changeToken string
	changeReq   backend.ChangePasswordRequest
	changeCalls int

	course      string
	courseErr   error
	courseDelay time.Duration
	courseCalls atomic.Int32
	gate        chan struct{} // 非 nil 时 Course 阻塞到 gate 关闭

	capsules    string
	capsulesErr error
}

func (m *mockBackend) Login(_ context.Context, email, _ string) (*backend.LoginResult, error) {
	m.mu.Lock()
	m.loginEmail = email
	m.mu.Unlock()
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockBackend) ForgotPassword(_ context.Context, _ string) (string, error) {
	return "", m.forgotErr
}

func (m *mockBackend) ResetPassword(_ context.Context, _ backend.ResetPasswordRequest) (string, error) {
	return m.resetMsg, m.resetErr
}

func (m *mockBackend) ChangePassword(_ context.Context, token string, req backend.ChangePasswordRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changeCalls++
	m.changeToken = token
	m.changeReq = req
	return "", m.changeErr
}

func (m *mockBackend) Course(ctx context.Context, _ string, _ int64) (json.RawMessage, error) {
	m.courseCalls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	if m.courseDelay > 0 {
		select {
		case <-time.After(m.courseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.courseErr != nil {
		return nil, m.courseErr
	}
	return json.RawMessage(m.course), nil
}

func (m *mockBackend) Capsules(_ context.Context, _ string, _ int64) (json.RawMessage, error) {
	if m.capsulesErr != nil {
		return nil, m.capsulesErr
	}
	if m.capsules == "" {
		return json.RawMessage("[]"), nil
	}
	return json.RawMessage(m.capsules), nil
}

// ── Mock HelpRepository ──

type mockHelpRepo struct {
	categories []model.HelpCategory
	err        error
}

func (m *mockHelpRepo) ListCategories(_ context.Context) ([]model.HelpCategory, error) {
	return m.categories, m.err
}

func (m *mockHelpRepo) GetCategoryBySlug(_ context.Context, slug string) (*model.HelpCategory, error) {
	for i := range m.categories {
		if m.categories[i].Slug == slug {
			return &m.categories[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockHelpRepo) CreateCategory(_ context.Context, c *model.HelpCategory) error {
	m.categories = append(m.categories, *c)
	return nil
}

func (m *mockHelpRepo) CreateArticle(_ context.Context, a *model.HelpArticle) error {
	for i := range m.categories {
		if m.categories[i].ID == a.CategoryID {
			m.categories[i].Articles = append(m.categories[i].Articles, *a)
		}
	}
	return nil
}

func (m *mockHelpRepo) CountArticles(_ context.Context) (int64, error) {
	var n int64
	for _, c := range m.categories {
		n += int64(len(c.Articles))
	}
	return n, nil
}

// ── 测试辅助 ──

// fixedNow 所有课程测试使用的当前时间
var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{Secret: "service-test-secret-0123456789", TTL: time.Hour},
		Portal: config.PortalConfig{
			DefaultCourseID:     2,
			Timezone:            "UTC",
			PendingLessonsLimit: 4,
		},
		Feature: config.FeatureConfig{HelpCenterEnabled: true, CapsulesEnabled: true},
	}
}

func testSessions(cfg *config.Config) (*session.Manager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, jwt.NewManager(&cfg.Session),
		session.NewCookieOptions(&cfg.Session.Cookie), zap.NewNop())
	return mgr, store
}

func newTestCourseService(cfg *config.Config, api Backend) *courseService {
	svc := NewCourseService(cfg, api, zap.NewNop()).(*courseService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func testRecord() *session.Record {
	return &session.Record{Token: "user-token", UserData: `{"id":7,"nombre":"Ana","apellido":"Pérez","email":"ana@example.com"}`}
}

// sampleCourse 两个模块：模块 1 进行中，模块 2 锁定
const sampleCourse = `{
	"id": 2,
	"titulo": "Mediación y Negociación",
	"modules": [
		{"id": 12, "moduleNumber": 2, "title": "Avanzado", "locked": true, "lessons": [
			{"id": 4, "title": "Bloqueada", "duration": "2h", "date_raw": "2026-03-11T10:00:00Z", "link_zoom": "https://zoom.us/j/4"}
		]},
		{"id": 11, "moduleNumber": 1, "title": "Fundamentos", "lessons": [
			{"id": 1, "title": "Intro", "duration": "1h", "completed": true},
			{"id": 2, "title": "Escucha activa", "duration": "1h 30min", "date": "12 de marzo", "date_raw": "2026-03-12T15:00:00Z",
			 "link_zoom": "https://zoom.us/j/2", "materiales": [{"id": 1, "titulo": "Guía", "link_drive": "https://drive/1", "tipo": "bibliografia"}]},
			{"id": 3, "title": "Cierre", "duration": "30min", "date_raw": "2026-03-20T15:00:00Z", "locked": true, "link_zoom": "https://zoom.us/j/3"}
		]}
	]
}`
