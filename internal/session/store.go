package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 会话不存在（从未创建、已登出或存储过期）
var ErrNotFound = errors.New("session not found")

// Record 会话记录：上游 Token + 登录时返回的用户 JSON（原样保存）
type Record struct {
	Token    string `json:"token"`
	UserData string `json:"user_data"`
}

// Store 会话存储能力；守卫、个人页与设置页都通过它读取会话
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Set(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Clear(ctx context.Context, id string) error
}
