package model

// HelpCategory 帮助中心分类
type HelpCategory struct {
	ID          int64         `gorm:"primaryKey"                 json:"id"`
	Slug        string        `gorm:"type:varchar(64);uniqueIndex" json:"slug"`
	Title       string        `gorm:"type:varchar(128);not null" json:"title"`
	Description string        `gorm:"type:varchar(255)"          json:"description"`
	Icon        string        `gorm:"type:varchar(32)"           json:"icon"`
	SortOrder   int           `gorm:"not null;default:0"         json:"sort_order"`
	Articles    []HelpArticle `gorm:"foreignKey:CategoryID"      json:"articles,omitempty"`
	BaseModel
}

func (HelpCategory) TableName() string { return "help_categories" }

// HelpArticle 常见问题条目；Answer 为 Markdown
type HelpArticle struct {
	ID         int64       `gorm:"primaryKey"                 json:"id"`
	CategoryID int64       `gorm:"not null;index"             json:"category_id"`
	Question   string      `gorm:"type:varchar(255);not null" json:"question"`
	Answer     string      `gorm:"type:text;not null"         json:"answer"`
	Tags       StringArray `gorm:"type:text[]"                json:"tags"`
	SortOrder  int         `gorm:"not null;default:0"         json:"sort_order"`
	BaseModel
}

func (HelpArticle) TableName() string { return "help_articles" }
