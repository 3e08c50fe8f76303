package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
)

// ── 错误分类 ──

var (
	// ErrUnreachable 网络错误、超时或调用方取消
	ErrUnreachable = errors.New("backend unreachable")
	// ErrInvalidResponse 响应体不是合法 JSON
	ErrInvalidResponse = errors.New("backend returned invalid response")
)

// APIError 上游返回非 2xx
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
}

// Observer 上游调用观测（由 pkg/metrics 实现）
type Observer interface {
	ObserveUpstream(endpoint, outcome string, elapsed time.Duration)
}

// Client REST 后端客户端
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient 创建后端客户端；observer 可为 nil
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger, observer Observer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// ── 请求/响应结构 ──

// LoginResult 登录结果；User 保留上游返回的原始 JSON
type LoginResult struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	UserID          any    `json:"userId"`
}

// messageBody 上游成功/失败响应里可能携带的提示文案
type messageBody struct {
	Message string `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ── 认证 ──

// Login 使用服务端 API Token 调用登录接口
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	raw, err := c.do(ctx, "login", http.MethodPost, "/user-elearnings/login", c.apiToken, body)
	if err != nil {
		return nil, err
	}

	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, ErrInvalidResponse
	}
	return &res, nil
}

// ForgotPassword 请求发送重置密码邮件，返回上游提示文案（可能为空）
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	raw, err := c.do(ctx, "forgot_password", http.MethodPost, "/user-elearnings/forgot-password", "", map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	return messageOf(raw), nil
}

// ResetPassword 使用重置 Token 设置新密码
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error) {
	raw, err := c.do(ctx, "reset_password", http.MethodPost, "/user-elearnings/reset-password", "", req)
	if err != nil {
		return "", err
	}
	return messageOf(raw), nil
}

// ChangePassword 以用户会话 Token 修改密码
func (c *Client) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) (string, error) {
	raw, err := c.do(ctx, "change_password", http.MethodPost, "/user-elearnings/change-password", token, req)
	if err != nil {
		return "", err
	}
	return messageOf(raw), nil
}

// ── 课程 ──

// Course 拉取课程聚合，返回归一化后的扁平 JSON
func (c *Client) Course(ctx context.Context, token string, courseID int64) (json.RawMessage, error) {
	path := "/cursos/" + strconv.FormatInt(courseID, 10)
	raw, err := c.do(ctx, "course", http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// Capsules 拉取课程补充资料（胶囊）
func (c *Client) Capsules(ctx context.Context, token string, courseID int64) (json.RawMessage, error) {
	q := url.Values{"cursoId": {strconv.FormatInt(courseID, 10)}}
	raw, err := c.do(ctx, "capsules", http.MethodGet, "/custom-capsulas?"+q.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}

// ── 内部 ──

// do 执行请求并按结果分类错误；成功时返回原始响应体
func (c *Client) do(ctx context.Context, endpoint, method, path, bearer string, body any) ([]byte, error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstream(endpoint, outcome, time.Since(start))
		}
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("序列化请求失败: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "unreachable"
		c.logger.Warn("调用上游失败", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = "unreachable"
		return nil, fmt.Errorf("%w: 读取响应失败: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "rejected"
		c.logger.Info("上游拒绝请求",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &APIError{Status: resp.StatusCode, Message: messageOf(raw)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}
	if !json.Valid(raw) {
		outcome = "invalid"
		c.logger.Warn("上游响应不是合法 JSON", zap.String("endpoint", endpoint))
		return nil, ErrInvalidResponse
	}
	return raw, nil
}

// messageOf 提取 error.message 或 message；无法解析时返回空串
func messageOf(raw []byte) string {
	var m messageBody
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	if m.Error != nil && m.Error.Message != "" {
		return m.Error.Message
	}
	return m.Message
}
