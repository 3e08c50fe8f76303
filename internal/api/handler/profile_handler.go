package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// ProfileHandler 个人页 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Profile 个人页
// GET /my-profile
func (h *ProfileHandler) Profile(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}

	resp, err := h.profileSvc.Profile(c.Request.Context(), rec)
	if err != nil {
		writeError(c, scopeCourse, err)
		return
	}
	response.OK(c, resp)
}
