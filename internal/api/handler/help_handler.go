package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// HelpHandler 帮助中心 HTTP 处理器
type HelpHandler struct {
	helpSvc service.HelpService
}

// NewHelpHandler 创建 HelpHandler；helpSvc 为 nil 表示帮助中心未启用
func NewHelpHandler(helpSvc service.HelpService) *HelpHandler {
	return &HelpHandler{helpSvc: helpSvc}
}

func (h *HelpHandler) available(c *gin.Context) bool {
	if h.helpSvc == nil {
		response.NotFound(c, 14004, "El centro de ayuda no está disponible")
		return false
	}
	return true
}

// Catalog 帮助中心分类与问题
// GET /help
func (h *HelpHandler) Catalog(c *gin.Context) {
	if !h.available(c) {
		return
	}

	resp, err := h.helpSvc.Catalog(c.Request.Context())
	if err != nil {
		writeError(c, scopeHelp, err)
		return
	}
	response.OK(c, resp)
}

// Search 搜索常见问题
// GET /help/search?q=
func (h *HelpHandler) Search(c *gin.Context) {
	if !h.available(c) {
		return
	}

	resp, err := h.helpSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, scopeHelp, err)
		return
	}
	response.OK(c, resp)
}
