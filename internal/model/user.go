package model

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUserDataNotObject 用户快照不是 JSON 对象
var ErrUserDataNotObject = errors.New("user data is not a JSON object")

// UserSnapshot 登录时由上游返回的用户快照
// ID 保留原始 JSON（数字或字符串），修改密码时原样回传
type UserSnapshot struct {
	ID       json.RawMessage `json:"id,omitempty"`
	Nombre   string          `json:"nombre,omitempty"`
	Apellido string          `json:"apellido,omitempty"`
	Email    string          `json:"email,omitempty"`
}

// ParseUserSnapshot 解析会话中保存的用户 JSON
func ParseUserSnapshot(raw string) (*UserSnapshot, error) {
	f, err := decodeFields([]byte(raw))
	if err != nil || isNull(json.RawMessage(raw)) {
		return nil, ErrUserDataNotObject
	}
	return &UserSnapshot{
		ID:       f.raw("id"),
		Nombre:   strings.TrimSpace(f.str("nombre")),
		Apellido: strings.TrimSpace(f.str("apellido")),
		Email:    strings.TrimSpace(f.str("email")),
	}, nil
}

// DisplayName 全名 → 名 → 邮箱前缀 → "Usuario"
func (u *UserSnapshot) DisplayName() string {
	switch {
	case u.Nombre != "" && u.Apellido != "":
		return u.Nombre + " " + u.Apellido
	case u.Nombre != "":
		return u.Nombre
	}
	if local, _, _ := strings.Cut(u.Email, "@"); local != "" {
		return local
	}
	return "Usuario"
}

// Initial 头像首字母（大写）
func (u *UserSnapshot) Initial() string {
	if r, _ := utf8.DecodeRuneInString(u.DisplayName()); r != utf8.RuneError {
		return string(unicode.ToUpper(r))
	}
	return "U"
}

// EmailOr 邮箱为空时返回占位文案
func (u *UserSnapshot) EmailOr(placeholder string) string {
	if u.Email == "" {
		return placeholder
	}
	return u.Email
}

// IDString 用户 ID 的字符串形式（日志、限流 key 使用）
func (u *UserSnapshot) IDString() string {
	if len(u.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(u.ID, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(u.ID, &n); err == nil {
		return n.String()
	}
	return ""
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
