package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/progress"
	"github.com/sromero1905/elearningfront/internal/session"
)

// defaultLessonLength 课时未标注时长时日历事件的默认长度
const defaultLessonLength = time.Hour

// CalendarService 课程日历导出接口
type CalendarService interface {
	// Calendar 导出未来可参加课时为 iCalendar
	Calendar(ctx context.Context, rec *session.Record, courseID int64) (string, error)
}

type calendarService struct {
	cfg     *config.Config
	courses CourseService
	logger  *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, courses CourseService, logger *zap.Logger) CalendarService {
	return &calendarService{cfg: cfg, courses: courses, logger: logger}
}

// Calendar 只包含未锁定模块中未锁定、且原始日期晚于当前时间的课时
func (s *calendarService) Calendar(ctx context.Context, rec *session.Record, courseID int64) (string, error) {
	course, err := s.courses.Load(ctx, rec.Token, courseID)
	if err != nil {
		return "", err
	}

	now := s.courses.Now()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//elearning-portal//calendario//ES")
	cal.SetName(course.Title)
	cal.SetXWRTimezone(now.Location().String())

	count := 0
	for _, m := range course.OrderedModules() {
		if m.Locked {
			continue
		}
		for _, l := range m.Lessons {
			if l.Locked {
				continue
			}
			start, ok := progress.ParseRawDate(l.DateRaw, now.Location())
			if !ok || !start.After(now) {
				continue
			}

			length := time.Duration(progress.ParseDuration(l.Duration)) * time.Minute
			if length <= 0 {
				length = defaultLessonLength
			}

			evt := cal.AddEvent(fmt.Sprintf("curso-%d-clase-%d@elearning-portal", course.ID, l.ID))
			evt.SetDtStampTime(now)
			evt.SetStartAt(start)
			evt.SetEndAt(start.Add(length))
			evt.SetSummary(l.Title)
			if desc := strings.TrimSpace(m.Label() + " · " + m.Title); desc != "" {
				evt.SetDescription(desc)
			}
			if l.JoinLink != "" {
				evt.SetURL(l.JoinLink)
				evt.SetLocation(l.JoinLink)
			}
			count++
		}
	}

	s.logger.Debug("生成课程日历", zap.Int64("course_id", courseID), zap.Int("events", count))
	return cal.Serialize(), nil
}
