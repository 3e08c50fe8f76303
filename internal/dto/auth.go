package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    form:"email"    binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email"       form:"email"       binding:"required"`
	ResetToken  string `json:"resetToken"  form:"resetToken"  binding:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
// 一致性与长度校验在 Service 层完成，以返回具体文案
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword"     form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}
