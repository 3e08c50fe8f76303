package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/api/middleware"
	"github.com/sromero1905/elearningfront/internal/session"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// MustGetSession 从 Gin 上下文中提取守卫注入的会话记录。
// 守卫未运行时按未登录处理，跳转到入口页；调用方应在 ok=false 时直接 return。
func MustGetSession(c *gin.Context) (*session.Record, bool) {
	v, exists := c.Get(middleware.SessionKey)
	if exists {
		if rec, ok := v.(*session.Record); ok && rec != nil {
			return rec, true
		}
	}
	c.Redirect(http.StatusFound, middleware.EntryPath)
	c.Abort()
	return nil, false
}

// courseIDParam 解析路径参数 :id
func courseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 12001, "Identificador de curso no válido")
		return 0, false
	}
	return id, true
}
