package service

import (
	"time"

	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/progress"
)

// ── 模型 → 视图 ──

func toUserSummary(u *model.UserSnapshot) dto.UserSummary {
	if u == nil {
		u = &model.UserSnapshot{}
	}
	return dto.UserSummary{
		DisplayName: u.DisplayName(),
		Initial:     u.Initial(),
		Email:       u.EmailOr(MsgEmailPlaceholder),
	}
}

// toCourseView 课程视图：模块按序号排序，锁定课时不暴露链接与资料
func toCourseView(c *model.Course, now time.Time) *dto.CourseView {
	summary := progress.Summarize(c, now)

	modules := c.OrderedModules()
	views := make([]dto.ModuleView, 0, len(modules))
	for i := range modules {
		m := &modules[i]
		mv := dto.ModuleView{
			ID:          m.ID,
			Label:       m.Label(),
			Title:       m.Title,
			Description: m.Description,
			Duration:    m.Duration,
			Progress:    m.Progress,
			Status:      m.StatusLabel(),
			Locked:      m.Locked,
			Completed:   m.Completed,
			Expanded:    i == summary.ExpandedModule,
			Lessons:     make([]dto.LessonView, 0, len(m.Lessons)),
		}
		for j := range m.Lessons {
			mv.Lessons = append(mv.Lessons, toLessonView(m, &m.Lessons[j]))
		}
		views = append(views, mv)
	}

	return &dto.CourseView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Stats: dto.CourseStats{
			TotalDuration:     summary.TotalDuration.String(),
			RemainingDuration: summary.RemainingDuration.String(),
			CompletedDuration: summary.CompletedDuration.String(),
			Progress:          progress.FormatPercentage(summary.Percentage),
			ProgressValue:     summary.Percentage,
			CompletedFraction: summary.Fraction,
			MaterialsCount:    summary.MaterialsCount,
			NextLesson:        summary.NextLesson,
		},
		Certification: progress.CertificationStatus(summary.Percentage),
		Modules:       views,
	}
}

func toLessonView(m *model.Module, l *model.Lesson) dto.LessonView {
	access := progress.LessonAccess(m, l)
	lv := dto.LessonView{
		ID:               l.ID,
		Title:            l.Title,
		Description:      l.Description,
		Duration:         l.Duration,
		Date:             l.DateLabel,
		Completed:        l.Completed,
		Locked:           l.Locked || m.Locked,
		CanJoin:          access.CanJoin,
		CanViewMaterials: access.CanViewMaterials,
	}
	if access.CanJoin {
		lv.JoinLink = l.JoinLink
	}
	if access.CanViewMaterials {
		lv.Materials = make([]dto.MaterialView, 0, len(l.Materials))
		for _, mat := range l.Materials {
			lv.Materials = append(lv.Materials, dto.MaterialView{
				ID:        mat.ID,
				Title:     mat.Title,
				Link:      mat.Link,
				Type:      string(mat.Type),
				TypeLabel: mat.Type.Label(),
			})
		}
	}
	return lv
}

func toCapsuleViews(capsules []model.Capsule) []dto.CapsuleView {
	out := make([]dto.CapsuleView, 0, len(capsules))
	for _, c := range capsules {
		out = append(out, dto.CapsuleView{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Link:        c.Link,
		})
	}
	return out
}
