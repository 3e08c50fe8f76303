package progress

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sromero1905/elearningfront/internal/model"
)

// NoUpcomingLesson 没有可参加的后续课时
const NoUpcomingLesson = "No hay clases próximamente"

// ── 时长 ──

// TotalDuration 全部课时时长之和（含锁定模块）
func TotalDuration(c *model.Course) Minutes {
	return sumDuration(c, func(*model.Lesson) bool { return true })
}

// RemainingDuration 未完成课时时长之和
func RemainingDuration(c *model.Course) Minutes {
	return sumDuration(c, func(l *model.Lesson) bool { return !l.Completed })
}

// CompletedDuration 已完成课时时长之和
func CompletedDuration(c *model.Course) Minutes {
	return sumDuration(c, func(l *model.Lesson) bool { return l.Completed })
}

func sumDuration(c *model.Course, include func(*model.Lesson) bool) Minutes {
	var total Minutes
	forEachLesson(c, func(_ *model.Module, l *model.Lesson) {
		if include(l) {
			total = total.Add(ParseDuration(l.Duration))
		}
	})
	return total
}

// ── 完成度 ──

// Counts 返回已完成课时数与课时总数
func Counts(c *model.Course) (completed, total int) {
	forEachLesson(c, func(_ *model.Module, l *model.Lesson) {
		total++
		if l.Completed {
			completed++
		}
	})
	return completed, total
}

// ProgressPercentage round(100*completed/total)；没有课时时为 0
func ProgressPercentage(c *model.Course) int {
	completed, total := Counts(c)
	if total == 0 {
		return 0
	}
	// 四舍五入（.5 向上，与前端 Math.round 一致）
	return (200*completed + total) / (2 * total)
}

// FormatPercentage 格式化为 "40%"
func FormatPercentage(p int) string {
	return strconv.Itoa(p) + "%"
}

// CompletedFraction "<completed>/<total>"
func CompletedFraction(c *model.Course) string {
	completed, total := Counts(c)
	return strconv.Itoa(completed) + "/" + strconv.Itoa(total)
}

// TotalMaterialsCount 全部课时资料数量之和
func TotalMaterialsCount(c *model.Course) int {
	n := 0
	forEachLesson(c, func(_ *model.Module, l *model.Lesson) {
		n += len(l.Materials)
	})
	return n
}

// ── 下一节课 ──

// UpcomingLesson 下一节可参加的课时
type UpcomingLesson struct {
	ModuleID int64
	LessonID int64
	Label    string
	Title    string
	At       time.Time
}

// String 格式化为 "<日期文案> - <标题>"
func (u UpcomingLesson) String() string {
	return u.Label + " - " + u.Title
}

// NextUpcomingLesson 在未锁定模块的未锁定课时中，
// 找出原始日期可解析且严格晚于 now 的最早一节；同一时间取按顺序先出现者
func NextUpcomingLesson(c *model.Course, now time.Time) (UpcomingLesson, bool) {
	var (
		best  UpcomingLesson
		found bool
	)
	forEachLesson(c, func(m *model.Module, l *model.Lesson) {
		if m.Locked || l.Locked {
			return
		}
		at, ok := ParseRawDate(l.DateRaw, now.Location())
		if !ok || !at.After(now) {
			return
		}
		if !found || at.Before(best.At) {
			best = UpcomingLesson{
				ModuleID: m.ID,
				LessonID: l.ID,
				Label:    l.DateLabel,
				Title:    l.Title,
				At:       at,
			}
			found = true
		}
	})
	return best, found
}

// DescribeNextLesson 下一节课的展示文案，没有时返回 NoUpcomingLesson
func DescribeNextLesson(c *model.Course, now time.Time) string {
	if next, ok := NextUpcomingLesson(c, now); ok {
		return next.String()
	}
	return NoUpcomingLesson
}

// ── 展开状态 ──

// DefaultExpandedModule 按序号排序后第一个未完成模块的下标（相对 OrderedModules）
// 全部完成或没有模块时返回 -1
func DefaultExpandedModule(c *model.Course) int {
	for i, m := range c.OrderedModules() {
		if !m.Completed {
			return i
		}
	}
	return -1
}

// ── 访问控制 ──

// Access 课时可用操作
type Access struct {
	CanJoin          bool
	CanViewMaterials bool
}

// LessonAccess 模块锁定优先于课时自身的锁定标记
func LessonAccess(m *model.Module, l *model.Lesson) Access {
	if m.Locked || l.Locked {
		return Access{}
	}
	return Access{
		CanJoin:          l.JoinLink != "",
		CanViewMaterials: l.HasResources && len(l.Materials) > 0,
	}
}

// ── 待上课时 ──

// PendingLesson 未完成课时及其所属模块
type PendingLesson struct {
	Module model.Module
	Lesson model.Lesson
	At     time.Time
	Dated  bool
}

// PendingLessons 未完成课时按原始日期升序，无日期的排在最后；limit<=0 表示不限
func PendingLessons(c *model.Course, loc *time.Location, limit int) []PendingLesson {
	var out []PendingLesson
	forEachLesson(c, func(m *model.Module, l *model.Lesson) {
		if l.Completed {
			return
		}
		at, ok := ParseRawDate(l.DateRaw, loc)
		out = append(out, PendingLesson{Module: *m, Lesson: *l, At: at, Dated: ok})
	})

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Dated != b.Dated {
			return a.Dated
		}
		return a.Dated && a.At.Before(b.At)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ── 汇总 ──

// Summary 仪表盘统计
type Summary struct {
	TotalDuration     Minutes
	RemainingDuration Minutes
	CompletedDuration Minutes
	Percentage        int
	CompletedLessons  int
	TotalLessons      int
	Fraction          string
	MaterialsCount    int
	NextLesson        string
	HasNextLesson     bool
	ExpandedModule    int
	Certified         bool
}

// Summarize 一次计算全部统计
func Summarize(c *model.Course, now time.Time) Summary {
	completed, total := Counts(c)
	pct := ProgressPercentage(c)
	next, ok := NextUpcomingLesson(c, now)

	s := Summary{
		TotalDuration:     TotalDuration(c),
		RemainingDuration: RemainingDuration(c),
		CompletedDuration: CompletedDuration(c),
		Percentage:        pct,
		CompletedLessons:  completed,
		TotalLessons:      total,
		Fraction:          CompletedFraction(c),
		MaterialsCount:    TotalMaterialsCount(c),
		NextLesson:        NoUpcomingLesson,
		HasNextLesson:     ok,
		ExpandedModule:    DefaultExpandedModule(c),
		Certified:         pct == 100,
	}
	if ok {
		s.NextLesson = next.String()
	}
	return s
}

// CertificationStatus 认证状态文案
func CertificationStatus(pct int) string {
	if pct >= 100 {
		return "Completado"
	}
	return "En progreso"
}

// ── 日期解析 ──

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseRawDate 解析课时原始日期
// 带时区的按其时区；不带时区的日期时间按 loc；纯日期按 UTC
func ParseRawDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// forEachLesson 按模块序号、课时原始顺序遍历
func forEachLesson(c *model.Course, fn func(m *model.Module, l *model.Lesson)) {
	if c == nil {
		return
	}
	modules := c.OrderedModules()
	for i := range modules {
		m := &modules[i]
		for j := range m.Lessons {
			fn(m, &m.Lessons[j])
		}
	}
}
