package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/pkg/backend"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// ProgressReport
// ═══════════════════════════════════════════════════════════

func TestExportService_ProgressReport(t *testing.T) {
	svc := NewExportService(newTestCourseService(testConfig(), &mockBackend{course: sampleCourse}), zap.NewNop())

	buf, filename, err := svc.ProgressReport(context.Background(), testRecord(), 2)
	if err != nil {
		t.Fatalf("ProgressReport 失败: %v", err)
	}
	if filename != "progreso_curso_2.xlsx" {
		t.Errorf("文件名不正确: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("生成的文件无法打开: %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue("Resumen", "A1")
	if title != "Mediación y Negociación" {
		t.Errorf("期望课程标题，实际 %q", title)
	}
	pct, _ := f.GetCellValue("Resumen", "B3")
	if pct != "25%" {
		t.Errorf("期望进度 25%%，实际 %q", pct)
	}

	rows, err := f.GetRows("Clases")
	if err != nil {
		t.Fatalf("读取 Clases 失败: %v", err)
	}
	// 表头 + 4 节课时
	if len(rows) != 5 {
		t.Fatalf("期望 5 行，实际 %d", len(rows))
	}
	if rows[1][0] != "Módulo 1" || rows[1][1] != "Intro" || rows[1][4] != "Completada" {
		t.Errorf("第一节课时不正确: %v", rows[1])
	}
	if rows[3][4] != "Bloqueada" || rows[4][4] != "Bloqueada" {
		t.Errorf("锁定课时状态不正确: %v / %v", rows[3], rows[4])
	}
}

func TestExportService_ProgressReport_CourseError(t *testing.T) {
	svc := NewExportService(newTestCourseService(testConfig(), &mockBackend{
		courseErr: &backend.APIError{Status: http.StatusNotFound},
	}), zap.NewNop())

	_, _, err := svc.ProgressReport(context.Background(), testRecord(), 99)
	if !pkgerrors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际 %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Calendar
// ═══════════════════════════════════════════════════════════

func TestCalendarService_Calendar(t *testing.T) {
	cfg := testConfig()
	svc := NewCalendarService(cfg, newTestCourseService(cfg, &mockBackend{course: sampleCourse}), zap.NewNop())

	body, err := svc.Calendar(context.Background(), testRecord(), 2)
	if err != nil {
		t.Fatalf("Calendar 失败: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("生成的日历无法解析: %v", err)
	}

	// 只有模块 1 的 "Escucha activa" 未锁定且在当前时间之后
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("期望 1 个事件，实际 %d", len(events))
	}
	if events[0].Id() != "curso-2-clase-2@elearning-portal" {
		t.Errorf("事件 UID 不正确: %s", events[0].Id())
	}
	summary := events[0].GetProperty(ics.ComponentPropertySummary)
	if summary == nil || summary.Value != "Escucha activa" {
		t.Errorf("事件标题不正确: %+v", summary)
	}
}
