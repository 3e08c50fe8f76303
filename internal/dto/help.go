package dto

// ── 帮助中心 ──

// HelpCenterResponse 帮助中心首页
type HelpCenterResponse struct {
	Categories []HelpCategoryView `json:"categories"`
}

// HelpCategoryView 分类
type HelpCategoryView struct {
	Slug           string            `json:"slug"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Icon           string            `json:"icon"`
	QuestionsCount int               `json:"questions_count"`
	Articles       []HelpArticleView `json:"articles"`
}

// HelpArticleView 常见问题条目；AnswerHTML 由 Markdown 渲染
type HelpArticleView struct {
	ID         int64    `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	AnswerHTML string   `json:"answer_html"`
	Tags       []string `json:"tags"`
}

// HelpSearchResponse 搜索结果；Searched=false 表示查询过短未执行搜索
type HelpSearchResponse struct {
	Query    string            `json:"query"`
	Searched bool              `json:"searched"`
	Total    int               `json:"total"`
	Groups   []HelpSearchGroup `json:"groups"`
}

// HelpSearchGroup 按分类分组的搜索结果
type HelpSearchGroup struct {
	Category string            `json:"category"`
	Items    []HelpArticleView `json:"items"`
}
