package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc  service.AuthService
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, sessions *session.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, sessions: sessions, logger: logger}
}

// Entry 入口页：是否已登录、首页地址
// GET /
func (h *AuthHandler) Entry(c *gin.Context) {
	ticket := session.TicketFrom(c.Request, h.sessions.Cookie())
	rec, err := h.sessions.Resolve(c.Request.Context(), ticket)
	response.OK(c, dto.EntryResponse{
		Authenticated: err == nil && session.IsAuthorized(rec),
		Home:          h.authSvc.HomePath(),
	})
}

// Login 用户登录，成功后下发会话 Cookie
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 11001, "Ingresa tu correo y contraseña")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, scopeAuth, err)
		return
	}

	session.SetCookie(c.Writer, result.Ticket, result.ExpiresAt, h.sessions.Cookie())
	response.OK(c, dto.LoginResponse{
		Redirect: result.Redirect,
		User:     result.User,
	})
}

// Logout 清除会话与 Cookie 后跳转到入口页
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	ticket := session.TicketFrom(c.Request, h.sessions.Cookie())
	if err := h.authSvc.Logout(c.Request.Context(), ticket); err != nil {
		// Cookie 仍然清除，记录残留由存储 TTL 回收
		h.logger.Warn("登出时清除会话失败", zap.Error(err))
	}

	session.ClearCookie(c.Writer, h.sessions.Cookie())
	c.Redirect(http.StatusSeeOther, "/")
}

// ForgotPassword 请求密码重置邮件
// POST /forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 11001, "Ingresa tu correo electrónico")
		return
	}

	msg, err := h.authSvc.ForgotPassword(c.Request.Context(), &req)
	if err != nil {
		writeError(c, scopeAuth, err)
		return
	}
	response.OKMessage(c, msg, nil)
}

// ResetPassword 使用重置 Token 设置新密码
// POST /reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, 11001, "Completa todos los campos")
		return
	}

	msg, err := h.authSvc.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		writeError(c, scopeAuth, err)
		return
	}
	response.OKMessage(c, msg, nil)
}
