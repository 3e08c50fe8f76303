package errors

import "errors"

// ── 错误分类 ──
//
// 业务层返回的错误都归入以下类别之一，Handler 通过 errors.Is 映射为 HTTP 状态码；
// 面向用户的文案由 *Error 携带，避免把上游原始错误透传给前端。

var (
	// ErrValidation 表单校验失败
	ErrValidation = errors.New("validation failed")
	// ErrAuthFailed 登录凭证被上游拒绝
	ErrAuthFailed = errors.New("authentication failed")
	// ErrUnauthenticated 上游判定会话 Token 无效或已过期
	ErrUnauthenticated = errors.New("upstream rejected session token")
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("resource not found")
	// ErrUpstreamRejected 上游返回了非 2xx 的业务错误
	ErrUpstreamRejected = errors.New("upstream rejected request")
	// ErrUpstreamUnavailable 上游不可达（网络错误、超时）
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamInvalid 上游返回了无法解析的响应
	ErrUpstreamInvalid = errors.New("upstream returned invalid response")
)

// Error 带用户可见文案的业务错误
type Error struct {
	Kind    error
	Message string
}

// New 创建带文案的业务错误
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// MessageOf 提取用户可见文案；err 不携带文案时返回 fallback
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// Is 透传标准库 errors.Is，方便调用方只导入本包
func Is(err, target error) bool { return errors.Is(err, target) }

// As 透传标准库 errors.As
func As(err error, target any) bool { return errors.As(err, target) }
