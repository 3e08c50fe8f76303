package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/progress"
	"github.com/sromero1905/elearningfront/internal/session"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// ProfileService 个人页业务接口
type ProfileService interface {
	Profile(ctx context.Context, rec *session.Record) (*dto.ProfileResponse, error)
}

type profileService struct {
	cfg     *config.Config
	courses CourseService
	logger  *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(cfg *config.Config, courses CourseService, logger *zap.Logger) ProfileService {
	return &profileService{cfg: cfg, courses: courses, logger: logger}
}

// Profile 用户信息、学习统计与接下来的待上课时
func (s *profileService) Profile(ctx context.Context, rec *session.Record) (*dto.ProfileResponse, error) {
	user, _ := rec.User()

	course, err := s.courses.Load(ctx, rec.Token, s.cfg.Portal.DefaultCourseID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if pkgerrors.Is(err, pkgerrors.ErrUnauthenticated) || pkgerrors.Is(err, pkgerrors.ErrNotFound) {
			return nil, err
		}
		return nil, pkgerrors.New(kindOf(err), MsgProfileFailed)
	}

	completed, total := progress.Counts(course)
	pct := progress.ProgressPercentage(course)
	now := s.courses.Now()

	pending := progress.PendingLessons(course, now.Location(), s.cfg.Portal.PendingLessonsLimit)
	views := make([]dto.PendingLessonView, 0, len(pending))
	for _, p := range pending {
		views = append(views, dto.PendingLessonView{
			ID:       p.Lesson.ID,
			Title:    p.Lesson.Title,
			Module:   p.Module.Title,
			Date:     p.Lesson.DateLabel,
			Duration: p.Lesson.Duration,
		})
	}

	return &dto.ProfileResponse{
		User:             toUserSummary(user),
		CourseTitle:      course.Title,
		CompletedLessons: completed,
		TotalLessons:     total,
		TotalDuration:    progress.TotalDuration(course).String(),
		Progress:         progress.FormatPercentage(pct),
		ProgressValue:    pct,
		PendingLessons:   views,
	}, nil
}
