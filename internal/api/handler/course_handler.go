package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sromero1905/elearningfront/internal/service"
	"github.com/sromero1905/elearningfront/pkg/response"
)

// CourseHandler 课程仪表盘 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Dashboard 课程仪表盘
// 课程或补充资料加载失败时仍返回 200，错误写在各自的字段中
// GET /home/:id
func (h *CourseHandler) Dashboard(c *gin.Context) {
	rec, ok := MustGetSession(c)
	if !ok {
		return
	}
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.courseSvc.Dashboard(c.Request.Context(), rec, courseID)
	if err != nil {
		writeError(c, scopeCourse, err)
		return
	}
	response.OK(c, resp)
}
