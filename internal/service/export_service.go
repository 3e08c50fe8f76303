package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/progress"
	"github.com/sromero1905/elearningfront/internal/session"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// ExportService 学习进度导出接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ProgressReport 导出课程进度为 Excel
	ProgressReport(ctx context.Context, rec *session.Record, courseID int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	courses CourseService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(courses CourseService, logger *zap.Logger) ExportService {
	return &exportService{courses: courses, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ProgressReport 导出课程进度
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Resumen"：课程标题与统计
//   - Sheet "Clases"：模块 / 课时 / 时长 / 日期 / 状态，每行一节课时
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

var lessonHeaders = []string{"Módulo", "Clase", "Duración", "Fecha", "Estado", "Materiales"}

func (s *exportService) ProgressReport(ctx context.Context, rec *session.Record, courseID int64) (*bytes.Buffer, string, error) {
	course, err := s.courses.Load(ctx, rec.Token, courseID)
	if err != nil {
		return nil, "", err
	}
	summary := progress.Summarize(course, s.courses.Now())

	f := excelize.NewFile()
	defer f.Close()

	// ── Sheet 1: 汇总 ──
	const summarySheet = "Resumen"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, "", s.generateFailed(err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E40AF"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(summarySheet, "A", "A", 26)
	f.SetColWidth(summarySheet, "B", "B", 40)
	f.SetCellValue(summarySheet, "A1", course.Title)
	f.SetCellStyle(summarySheet, "A1", "A1", titleStyle)

	rows := [][2]interface{}{
		{"Progreso", progress.FormatPercentage(summary.Percentage)},
		{"Clases completadas", summary.Fraction},
		{"Duración total", summary.TotalDuration.String()},
		{"Tiempo restante", summary.RemainingDuration.String()},
		{"Materiales", summary.MaterialsCount},
		{"Próxima clase", summary.NextLesson},
		{"Certificación", progress.CertificationStatus(summary.Percentage)},
	}
	for i, r := range rows {
		row := i + 3
		f.SetCellValue(summarySheet, cell("A", row), r[0])
		f.SetCellValue(summarySheet, cell("B", row), r[1])
	}

	// ── Sheet 2: 课时明细 ──
	const lessonSheet = "Clases"
	if _, err := f.NewSheet(lessonSheet); err != nil {
		return nil, "", s.generateFailed(err)
	}
	widths := []float64{18, 40, 12, 22, 14, 12}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(lessonSheet, col, col, w)
	}
	for i, h := range lessonHeaders {
		f.SetCellValue(lessonSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(lessonSheet, "A1", cell(colName(len(lessonHeaders)-1), 1), headerStyle)

	row := 2
	for _, m := range course.OrderedModules() {
		for _, l := range m.Lessons {
			f.SetCellValue(lessonSheet, cell("A", row), m.Label())
			f.SetCellValue(lessonSheet, cell("B", row), l.Title)
			f.SetCellValue(lessonSheet, cell("C", row), progress.ParseDuration(l.Duration).String())
			f.SetCellValue(lessonSheet, cell("D", row), l.DateLabel)
			f.SetCellValue(lessonSheet, cell("E", row), lessonStatus(&m, &l))
			f.SetCellValue(lessonSheet, cell("F", row), len(l.Materials))
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("progreso_curso_%d.xlsx", courseID)
	return buf, filename, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return pkgerrors.New(pkgerrors.ErrUpstreamInvalid, MsgExportFailed)
}

func lessonStatus(m *model.Module, l *model.Lesson) string {
	switch {
	case m.Locked || l.Locked:
		return "Bloqueada"
	case l.Completed:
		return "Completada"
	default:
		return "Pendiente"
	}
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}
