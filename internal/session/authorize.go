package session

import (
	"strings"

	"github.com/sromero1905/elearningfront/internal/model"
)

// IsAuthorized Token 与用户数据都存在且非空，且用户数据是 JSON 对象
// 不校验 Token 本身的有效性，Token 是否过期由上游在后续请求中判定
func IsAuthorized(rec *Record) bool {
	if rec == nil {
		return false
	}
	if strings.TrimSpace(rec.Token) == "" || strings.TrimSpace(rec.UserData) == "" {
		return false
	}
	_, err := model.ParseUserSnapshot(rec.UserData)
	return err == nil
}

// User 解析会话中的用户快照
func (r *Record) User() (*model.UserSnapshot, error) {
	return model.ParseUserSnapshot(r.UserData)
}
