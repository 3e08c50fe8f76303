package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/backend"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// ConfigurationService 设置页业务接口
type ConfigurationService interface {
	Account(rec *session.Record) *dto.ConfigurationResponse
	ChangePassword(ctx context.Context, rec *session.Record, req *dto.ChangePasswordRequest) (string, error)
}

type configurationService struct {
	api    Backend
	logger *zap.Logger
}

// NewConfigurationService 创建 ConfigurationService 实例
func NewConfigurationService(api Backend, logger *zap.Logger) ConfigurationService {
	return &configurationService{api: api, logger: logger}
}

// Account 账户卡片
func (s *configurationService) Account(rec *session.Record) *dto.ConfigurationResponse {
	user, _ := rec.User()
	return &dto.ConfigurationResponse{Account: toUserSummary(user)}
}

// ChangePassword 先校验两次输入一致、再校验长度，通过后以会话 Token 调用上游
func (s *configurationService) ChangePassword(ctx context.Context, rec *session.Record, req *dto.ChangePasswordRequest) (string, error) {
	if req.NewPassword != req.ConfirmPassword {
		return "", pkgerrors.New(pkgerrors.ErrValidation, MsgPasswordMismatch)
	}
	if len([]rune(req.NewPassword)) < MinPasswordLength {
		return "", pkgerrors.New(pkgerrors.ErrValidation, MsgPasswordTooShort)
	}
	if req.CurrentPassword == "" {
		return "", pkgerrors.New(pkgerrors.ErrValidation, MsgPasswordRequired)
	}

	user, err := rec.User()
	if err != nil {
		return "", pkgerrors.New(pkgerrors.ErrValidation, MsgPasswordChangeFailed)
	}

	_, err = s.api.ChangePassword(ctx, rec.Token, backend.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		UserID:          user.ID,
	})
	if err != nil {
		s.logger.Info("修改密码失败", zap.String("user_id", user.IDString()), zap.Error(err))
		return "", classifyUpstream(err, MsgPasswordChangeFailed)
	}

	s.logger.Info("修改密码成功", zap.String("user_id", user.IDString()))
	return MsgPasswordChanged, nil
}
