package service

import (
	"bytes"
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/sromero1905/elearningfront/internal/dto"
	"github.com/sromero1905/elearningfront/internal/model"
	"github.com/sromero1905/elearningfront/internal/repository"
	pkgerrors "github.com/sromero1905/elearningfront/pkg/errors"
)

// MinSearchLength 搜索词最少字符数
const MinSearchLength = 2

// HelpService 帮助中心业务接口
type HelpService interface {
	Catalog(ctx context.Context) (*dto.HelpCenterResponse, error)
	Search(ctx context.Context, query string) (*dto.HelpSearchResponse, error)
}

type helpService struct {
	repo   *repository.Repository
	md     goldmark.Markdown
	logger *zap.Logger
}

// NewHelpService 创建 HelpService 实例
// 答案中的原始 HTML 会被转义（未开启 WithUnsafe）
func NewHelpService(repo *repository.Repository, logger *zap.Logger) HelpService {
	return &helpService{
		repo: repo,
		md: goldmark.New(
			goldmark.WithRendererOptions(
				goldmarkHTML.WithHardWraps(),
			),
		),
		logger: logger,
	}
}

// Catalog 全部分类及条目
func (s *helpService) Catalog(ctx context.Context) (*dto.HelpCenterResponse, error) {
	categories, err := s.repo.Help.ListCategories(ctx)
	if err != nil {
		s.logger.Error("查询帮助中心失败", zap.Error(err))
		return nil, pkgerrors.New(pkgerrors.ErrUpstreamUnavailable, MsgHelpFailed)
	}

	views := make([]dto.HelpCategoryView, 0, len(categories))
	for _, c := range categories {
		articles := make([]dto.HelpArticleView, 0, len(c.Articles))
		for _, a := range c.Articles {
			articles = append(articles, s.toArticleView(a))
		}
		views = append(views, dto.HelpCategoryView{
			Slug:           c.Slug,
			Title:          c.Title,
			Description:    c.Description,
			Icon:           c.Icon,
			QuestionsCount: len(articles),
			Articles:       articles,
		})
	}
	return &dto.HelpCenterResponse{Categories: views}, nil
}

// Search 问题、答案或任一标签包含查询词（不区分大小写）
// 查询词不足 MinSearchLength 个字符时不执行搜索；结果按分类分组，空分组省略
func (s *helpService) Search(ctx context.Context, query string) (*dto.HelpSearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &dto.HelpSearchResponse{Query: query, Groups: []dto.HelpSearchGroup{}}
	if utf8.RuneCountInString(query) < MinSearchLength {
		return resp, nil
	}

	categories, err := s.repo.Help.ListCategories(ctx)
	if err != nil {
		s.logger.Error("查询帮助中心失败", zap.Error(err))
		return nil, pkgerrors.New(pkgerrors.ErrUpstreamUnavailable, MsgHelpFailed)
	}

	resp.Searched = true
	needle := strings.ToLower(query)
	for _, c := range categories {
		var items []dto.HelpArticleView
		for _, a := range c.Articles {
			if articleMatches(a, needle) {
				items = append(items, s.toArticleView(a))
			}
		}
		if len(items) == 0 {
			continue
		}
		resp.Groups = append(resp.Groups, dto.HelpSearchGroup{Category: c.Title, Items: items})
		resp.Total += len(items)
	}
	return resp, nil
}

func articleMatches(a model.HelpArticle, needle string) bool {
	if strings.Contains(strings.ToLower(a.Question), needle) ||
		strings.Contains(strings.ToLower(a.Answer), needle) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (s *helpService) toArticleView(a model.HelpArticle) dto.HelpArticleView {
	tags := []string(a.Tags)
	if tags == nil {
		tags = []string{}
	}
	return dto.HelpArticleView{
		ID:         a.ID,
		Question:   a.Question,
		Answer:     a.Answer,
		AnswerHTML: s.render(a.Answer),
		Tags:       tags,
	}
}

// render Markdown → HTML，失败时退回转义后的纯文本
func (s *helpService) render(src string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(src), &buf); err != nil {
		s.logger.Warn("渲染 Markdown 失败", zap.Error(err))
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return buf.String()
}
