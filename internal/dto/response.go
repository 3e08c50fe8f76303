package dto

// ── 认证模块响应 ──

// LoginResponse 登录成功响应
type LoginResponse struct {
	Redirect string      `json:"redirect"`
	User     UserSummary `json:"user"`
}

// EntryResponse 入口页响应
type EntryResponse struct {
	Authenticated bool   `json:"authenticated"`
	Home          string `json:"home"`
}

// ── 用户 ──

// UserSummary 页头/账户卡片展示的用户信息
type UserSummary struct {
	DisplayName string `json:"display_name"`
	Initial     string `json:"initial"`
	Email       string `json:"email"`
}

// ── 设置页 ──

// ConfigurationResponse 设置页响应
type ConfigurationResponse struct {
	Account UserSummary `json:"account"`
}
