package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/repository"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/backend"
	"github.com/sromero1905/elearningfront/pkg/metrics"
)

// Backend 上游 REST 后端能力（由 pkg/backend.Client 实现）
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req backend.ResetPasswordRequest) (string, error)
	ChangePassword(ctx context.Context, token string, req backend.ChangePasswordRequest) (string, error)
	Course(ctx context.Context, token string, courseID int64) (json.RawMessage, error)
	Capsules(ctx context.Context, token string, courseID int64) (json.RawMessage, error)
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth          AuthService
	Course        CourseService
	Profile       ProfileService
	Configuration ConfigurationService
	Help          HelpService // 帮助中心未启用时为 nil
	Export        ExportService
	Calendar      CalendarService
}

// NewService 创建 Service 聚合；repo 为 nil 时不创建帮助中心
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	api Backend,
	sessions *session.Manager,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	course := NewCourseService(cfg, api, logger)

	svc := &Service{
		Auth:          NewAuthService(cfg, api, sessions, m, logger),
		Course:        course,
		Profile:       NewProfileService(cfg, course, logger),
		Configuration: NewConfigurationService(api, logger),
		Export:        NewExportService(course, logger),
		Calendar:      NewCalendarService(cfg, course, logger),
	}
	if repo != nil {
		svc.Help = NewHelpService(repo, logger)
	}
	return svc
}

// clock 便于测试替换当前时间
type clock func() time.Time
