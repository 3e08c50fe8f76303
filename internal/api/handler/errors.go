package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// ── 业务码 ──
//
// 模块基数 + 错误类别：
//   11xxx 认证  12xxx 课程  13xxx 设置  14xxx 帮助中心  15xxx 导出
//   +1 参数校验  +2 凭证错误  +3 会话失效  +4 不存在
//   +5 上游拒绝  +6 上游不可用  +7 上游响应无效

const (
	scopeAuth          = 11000
	scopeCourse        = 12000
	scopeConfiguration = 13000
	scopeHelp          = 14000
	scopeExport        = 15000
)

var errorClasses = []struct {
	kind   error
	status int
	offset int
}{
	{pkgerrors.ErrValidation, http.StatusBadRequest, 1},
	{pkgerrors.ErrAuthFailed, http.StatusUnauthorized, 2},
	{pkgerrors.ErrUnauthenticated, http.StatusUnauthorized, 3},
	{pkgerrors.ErrNotFound, http.StatusNotFound, 4},
	{pkgerrors.ErrUpstreamRejected, http.StatusUnprocessableEntity, 5},
	{pkgerrors.ErrUpstreamUnavailable, http.StatusBadGateway, 6},
	{pkgerrors.ErrUpstreamInvalid, http.StatusBadGateway, 7},
}

// writeError 按错误类别写入统一错误响应
// 调用方已断开时不再写响应
func writeError(c *gin.Context, scope int, err error) {
	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}
	for _, ec := range errorClasses {
		if pkgerrors.Is(err, ec.kind) {
			response.Error(c, ec.status, scope+ec.offset, pkgerrors.MessageOf(err, ""))
			return
		}
	}
	_ = c.Error(err)
	response.InternalError(c)
}
