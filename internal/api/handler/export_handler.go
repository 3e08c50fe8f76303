package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ProgressReport 导出课程进度
// GET /home/:id/export.xlsx
func (h *ExportHandler) ProgressReport(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ProgressReport(c.Request.Context(), rec, courseID)
	if err != nil {
		writeError(c, scopeExport, err)
		return
	}

	// 设置下载响应头
	attachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar 导出即将到来的课时为 iCalendar
// GET /home/:id/calendar.ics
func (h *ExportHandler) Calendar(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}

	body, err := h.calendarSvc.Calendar(c.Request.Context(), rec, courseID)
	if err != nil {
		writeError(c, scopeExport, err)
		return
	}

	attachment(c, fmt.Sprintf("clases_curso_%d.ics", courseID))
	c.Data(http.StatusOK, icsContentType, []byte(body))
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}
