package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/pkg/jwt"
)

// ErrNoTicket 请求未携带有效票据
var ErrNoTicket = errors.New("session ticket missing or invalid")

// Manager 会话生命周期：登录时创建、每次请求解析、登出时销毁
type Manager struct {
	store   Store
	tickets *jwt.Manager
	cookie  CookieOptions
	logger  *zap.Logger
}

// NewManager 创建会话管理器
func NewManager(store Store, tickets *jwt.Manager, cookie CookieOptions, logger *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		tickets: tickets,
		cookie:  cookie,
		logger:  logger,
	}
}

// Cookie 返回 Cookie 属性
func (m *Manager) Cookie() CookieOptions { return m.cookie }

// Open 保存会话记录并签发票据
func (m *Manager) Open(ctx context.Context, rec Record) (string, time.Time, error) {
	id := uuid.New().String()
	if err := m.store.Set(ctx, id, rec, m.tickets.TTL()); err != nil {
		return "", time.Time{}, fmt.Errorf("保存会话失败: %w", err)
	}

	ticket, expiresAt, err := m.tickets.IssueTicket(id)
	if err != nil {
		_ = m.store.Clear(ctx, id)
		return "", time.Time{}, fmt.Errorf("签发票据失败: %w", err)
	}
	return ticket, expiresAt, nil
}

// Resolve 由票据取回会话记录
// 票据缺失或无效返回 ErrNoTicket；记录不存在返回 ErrNotFound
func (m *Manager) Resolve(ctx context.Context, ticket string) (*Record, error) {
	if ticket == "" {
		return nil, ErrNoTicket
	}
	claims, err := m.tickets.ParseTicket(ticket)
	if err != nil {
		return nil, ErrNoTicket
	}
	return m.store.Get(ctx, claims.SessionID)
}

// Close 销毁票据对应的会话记录；票据无效时视为已登出
func (m *Manager) Close(ctx context.Context, ticket string) error {
	if ticket == "" {
		return nil
	}
	claims, err := m.tickets.ParseTicket(ticket)
	if err != nil {
		// 过期票据对应的记录仍需清除
		if !errors.Is(err, jwt.ErrTicketExpired) {
			return nil
		}
		claims, err = m.tickets.ParseExpiredTicket(ticket)
		if err != nil {
			return nil
		}
	}
	if err := m.store.Clear(ctx, claims.SessionID); err != nil {
		m.logger.Warn("清除会话失败", zap.String("session_id", claims.SessionID), zap.Error(err))
		return err
	}
	return nil
}
