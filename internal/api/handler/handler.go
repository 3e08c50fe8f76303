package handler

import (
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/internal/session"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	Course        *CourseHandler
	Profile       *ProfileHandler
	Configuration *ConfigurationHandler
	Help          *HelpHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, sessions *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth, sessions, logger),
		Course:        NewCourseHandler(svc.Course),
		Profile:       NewProfileHandler(svc.Profile),
		Configuration: NewConfigurationHandler(svc.Configuration),
		Help:          NewHelpHandler(svc.Help),
		Export:        NewExportHandler(svc.Export, svc.Calendar),
	}
}
