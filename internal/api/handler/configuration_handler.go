package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// ConfigurationHandler 设置页 HTTP 处理器
type ConfigurationHandler struct {
	configSvc service.ConfigurationService
}

// NewConfigurationHandler 创建 ConfigurationHandler
func NewConfigurationHandler(configSvc service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configSvc: configSvc}
}

// Show 账户信息
// GET /configuration
func (h *ConfigurationHandler) Show(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}
	response.OK(c, h.configSvc.Account(rec))
}

// ChangePassword 修改密码
// POST /configuration/password
func (h *ConfigurationHandler) ChangePassword(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 13001, "Datos del formulario no válidos")
		return
	}

	msg, err := h.configSvc.ChangePassword(c.Request.Context(), rec, &req)
	if err != nil {
		writeError(c, scopeConfiguration, err)
		return
	}
	response.OKMessage(c, msg, nil)
}
