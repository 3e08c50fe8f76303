package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sromero1905/elearningfront/internal/model"
)

// HelpRepository 帮助中心数据访问接口
type HelpRepository interface {
	ListCategories(ctx context.Context) ([]model.HelpCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.HelpCategory, error)
	CreateCategory(ctx context.Context, category *model.HelpCategory) error
	CreateArticle(ctx context.Context, article *model.HelpArticle) error
	CountArticles(ctx context.Context) (int64, error)
}

// helpRepo HelpRepository 的 GORM 实现
type helpRepo struct {
	db *gorm.DB
}

// NewHelpRepo 创建 HelpRepository 实例
func NewHelpRepo(db *gorm.DB) HelpRepository {
	return &helpRepo{db: db}
}

// ListCategories 按排序返回全部分类及其条目
func (r *helpRepo) ListCategories(ctx context.Context) ([]model.HelpCategory, error) {
	var categories []model.HelpCategory
	err := r.db.WithContext(ctx).
		Preload("Articles", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *helpRepo) GetCategoryBySlug(ctx context.Context, slug string) (*model.HelpCategory, error) {
	var category model.HelpCategory
	err := r.db.WithContext(ctx).
		Preload("Articles", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *helpRepo) CreateCategory(ctx context.Context, category *model.HelpCategory) error {
	return r.db.WithContext(ctx).Omit("Articles").Create(category).Error
}

func (r *helpRepo) CreateArticle(ctx context.Context, article *model.HelpArticle) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *helpRepo) CountArticles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.HelpArticle{}).Count(&n).Error
	return n, err
}
