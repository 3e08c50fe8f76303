package dto

// ── 仪表盘 ──

// DashboardResponse 课程仪表盘
type DashboardResponse struct {
	Welcome       string        `json:"welcome"`
	User          UserSummary   `json:"user"`
	Course        *CourseView   `json:"course,omitempty"`
	CourseError   string        `json:"course_error,omitempty"`
	Capsules      []CapsuleView `json:"capsules"`
	CapsulesError string        `json:"capsules_error,omitempty"`
}

// CourseView 课程及统计
type CourseView struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Stats         CourseStats  `json:"stats"`
	Certification string       `json:"certification"`
	Modules       []ModuleView `json:"modules"`
}

// CourseStats 课程统计
type CourseStats struct {
	TotalDuration     string `json:"total_duration"`
	RemainingDuration string `json:"remaining_duration"`
	CompletedDuration string `json:"completed_duration"`
	Progress          string `json:"progress"`
	ProgressValue     int    `json:"progress_value"`
	CompletedFraction string `json:"completed_fraction"`
	MaterialsCount    int    `json:"materials_count"`
	NextLesson        string `json:"next_lesson"`
}

// ModuleView 模块
type ModuleView struct {
	ID          int64        `json:"id"`
	Label       string       `json:"label"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Progress    float64      `json:"progress"`
	Status      string       `json:"status"`
	Locked      bool         `json:"locked"`
	Completed   bool         `json:"completed"`
	Expanded    bool         `json:"expanded"`
	Lessons     []LessonView `json:"lessons"`
}

// LessonView 课时；锁定时不返回加入链接与资料
type LessonView struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Duration         string         `json:"duration"`
	Date             string         `json:"date"`
	Completed        bool           `json:"completed"`
	Locked           bool           `json:"locked"`
	CanJoin          bool           `json:"can_join"`
	CanViewMaterials bool           `json:"can_view_materials"`
	JoinLink         string         `json:"join_link,omitempty"`
	Materials        []MaterialView `json:"materials,omitempty"`
}

// MaterialView 课时资料
type MaterialView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Type      string `json:"type"`
	TypeLabel string `json:"type_label"`
}

// CapsuleView 补充资料
type CapsuleView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// ── 个人页 ──

// ProfileResponse 个人页
type ProfileResponse struct {
	User             UserSummary         `json:"user"`
	CourseTitle      string              `json:"course_title"`
	CompletedLessons int                 `json:"completed_lessons"`
	TotalLessons     int                 `json:"total_lessons"`
	TotalDuration    string              `json:"total_duration"`
	Progress         string              `json:"progress"`
	ProgressValue    int                 `json:"progress_value"`
	PendingLessons   []PendingLessonView `json:"pending_lessons"`
}

// PendingLessonView 待上课时
type PendingLessonView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Module   string `json:"module"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
}
