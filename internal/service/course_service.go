package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sromero1905/elearningfront/config"
	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/session"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// CourseService 课程业务接口
type CourseService interface {
	// Load 拉取并解析课程；同一用户对同一课程的并发请求合并为一次上游调用
	Load(ctx context.Context, token string, courseID int64) (*model.Course, error)
	// Dashboard 课程仪表盘：课程与补充资料独立拉取，各自记录错误
	Dashboard(ctx context.Context, rec *session.Record, courseID int64) (*dto.DashboardResponse, error)
	// Now 当前时间（按门户时区）
	Now() time.Time
}

type courseService struct {
	cfg    *config.Config
	api    Backend
	group  singleflight.Group
	now    clock
	loc    *time.Location
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(cfg *config.Config, api Backend, logger *zap.Logger) CourseService {
	return &courseService{
		cfg:    cfg,
		api:    api,
		now:    time.Now,
		loc:    cfg.Portal.Location(),
		logger: logger,
	}
}

func (s *courseService) Now() time.Time {
	return s.now().In(s.loc)
}

// ═══════════════════════════════════════════════════════════
// Load 拉取课程
// ═══════════════════════════════════════════════════════════
//
// singleflight 内部使用脱离取消的 context，避免首个调用方断开后
// 其余等待者一起失败；每个调用方仍在自己的 ctx 上等待，断开即返回。

func (s *courseService) Load(ctx context.Context, token string, courseID int64) (*model.Course, error) {
	key := flightKey(token, courseID)
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		raw, err := s.api.Course(detached, token, courseID)
		if err != nil {
			return nil, err
		}
		course, err := model.ParseCourse(raw)
		if err != nil {
			s.logger.Warn("课程响应不是对象", zap.Int64("course_id", courseID), zap.Error(err))
			return nil, pkgerrors.New(pkgerrors.ErrUpstreamInvalid, MsgCourseFailed)
		}
		return course, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if _, ok := res.Err.(*pkgerrors.Error); ok {
				return nil, res.Err
			}
			s.logger.Warn("拉取课程失败", zap.Int64("course_id", courseID), zap.Error(res.Err))
			return nil, classifyRead(res.Err, MsgCourseFailed)
		}
		return res.Val.(*model.Course), nil
	}
}

// flightKey 合并 key 不直接包含 Token 明文
func flightKey(token string, courseID int64) string {
	sum := sha256.Sum256([]byte(token))
	return strconv.FormatInt(courseID, 10) + ":" + hex.EncodeToString(sum[:8])
}

// ═══════════════════════════════════════════════════════════
// Dashboard 课程仪表盘
// ═══════════════════════════════════════════════════════════

func (s *courseService) Dashboard(ctx context.Context, rec *session.Record, courseID int64) (*dto.DashboardResponse, error) {
	user, _ := rec.User()
	summary := toUserSummary(user)

	resp := &dto.DashboardResponse{
		Welcome:  summary.DisplayName,
		User:     summary,
		Capsules: []dto.CapsuleView{},
	}

	var (
		wg       sync.WaitGroup
		course   *model.Course
		courseEr error
		capsules []model.Capsule
		capErr   error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		course, courseEr = s.Load(ctx, rec.Token, courseID)
	}()

	if s.cfg.Feature.CapsulesEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := s.api.Capsules(ctx, rec.Token, courseID)
			if err != nil {
				capErr = err
				return
			}
			capsules = model.ParseCapsules(raw)
		}()
	}

	wg.Wait()

	// 调用方已断开，丢弃结果
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if courseEr != nil {
		resp.CourseError = pkgerrors.MessageOf(courseEr, MsgCourseFailed)
	} else {
		resp.Course = toCourseView(course, s.Now())
	}

	if capErr != nil {
		s.logger.Info("拉取补充资料失败", zap.Int64("course_id", courseID), zap.Error(capErr))
		resp.CapsulesError = MsgCapsulesFailed
	} else {
		resp.Capsules = toCapsuleViews(capsules)
	}

	return resp, nil
}
