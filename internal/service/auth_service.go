package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/backend"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
	"github.com/sromero1905/elearningfront/pkg/metrics"
)

// LoginResult 登录成功后 Handler 需要的信息
type LoginResult struct {
	Ticket    string
	ExpiresAt time.Time
	Redirect  string
	User      dto.UserSummary
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, ticket string) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (string, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (string, error)
	// HomePath 登录后的默认首页
	HomePath() string
}

type authService struct {
	cfg      *config.Config
	api      Backend
	sessions *session.Manager
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	api Backend,
	sessions *session.Manager,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		api:      api,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
	}
}

func (s *authService) HomePath() string {
	return "/home/" + strconv.FormatInt(s.cfg.Portal.DefaultCourseID, 10)
}

// Login 调用上游登录，成功后保存会话记录并签发票据
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(req.Email)

	// 1. 上游校验凭证
	res, err := s.api.Login(ctx, email, req.Password)
	if err != nil {
		s.metrics.LoginAttempt("failure")
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = MsgLoginFailed
			}
			return nil, pkgerrors.New(pkgerrors.ErrAuthFailed, msg)
		}
		s.logger.Warn("登录请求失败", zap.Error(err))
		return nil, classifyUpstream(err, MsgLoginFailed)
	}

	// 2. 响应必须同时带 Token 与用户对象，否则会话无法通过守卫
	user, err := model.ParseUserSnapshot(string(res.User))
	if res.Token == "" || err != nil {
		s.metrics.LoginAttempt("failure")
		s.logger.Warn("登录响应缺少 token 或 user", zap.Bool("has_token", res.Token != ""))
		return nil, pkgerrors.New(pkgerrors.ErrUpstreamInvalid, MsgInvalidResponse)
	}

	// 3. 保存会话
	ticket, expiresAt, err := s.sessions.Open(ctx, session.Record{
		Token:    res.Token,
		UserData: string(res.User),
	})
	if err != nil {
		s.logger.Error("创建会话失败", zap.Error(err))
		return nil, err
	}

	s.metrics.LoginAttempt("success")
	s.logger.Info("用户登录成功", zap.String("user_id", user.IDString()))

	return &LoginResult{
		Ticket:    ticket,
		ExpiresAt: expiresAt,
		Redirect:  s.HomePath(),
		User:      toUserSummary(user),
	}, nil
}

// Logout 清除会话记录；票据无效时视为已登出
func (s *authService) Logout(ctx context.Context, ticket string) error {
	if err := s.sessions.Close(ctx, ticket); err != nil {
		s.logger.Warn("登出清理会话失败", zap.Error(err))
		return err
	}
	return nil
}

// ForgotPassword 请求发送重置邮件
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (string, error) {
	if _, err := s.api.ForgotPassword(ctx, strings.TrimSpace(req.Email)); err != nil {
		s.logger.Info("找回密码请求失败", zap.Error(err))
		return "", classifyUpstream(err, MsgForgotFailed)
	}
	return MsgForgotSent, nil
}

// ResetPassword 使用邮件中的重置 Token 设置新密码
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (string, error) {
	if len([]rune(req.NewPassword)) < MinPasswordLength {
		return "", pkgerrors.New(pkgerrors.ErrValidation, MsgPasswordTooShort)
	}

	msg, err := s.api.ResetPassword(ctx, backend.ResetPasswordRequest{
		Email:       strings.TrimSpace(req.Email),
		ResetToken:  req.ResetToken,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		s.logger.Info("重置密码失败", zap.Error(err))
		return "", classifyUpstream(err, MsgForgotFailed)
	}
	if msg == "" {
		msg = MsgResetDone
	}
	return msg, nil
}
