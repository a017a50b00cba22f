package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultCategory = "berita"

type ArticleModel struct {
	ArticleID            uuid.UUID                   `gorm:"column:article_id;type:uuid;primaryKey" json:"article_id"`
	ArticleTitle         string                      `gorm:"column:article_title;type:varchar(255);not null" json:"article_title"`
	ArticleSlug          string                      `gorm:"column:article_slug;type:varchar(160);not null;uniqueIndex" json:"article_slug"`
	ArticleExcerpt       string                      `gorm:"column:article_excerpt;type:text" json:"article_excerpt"`
	ArticleContent       string                      `gorm:"column:article_content;type:text;not null" json:"article_content"`
	ArticleCategory      string                      `gorm:"column:article_category;type:varchar(50);not null;index" json:"article_category"`
	ArticleTags          datatypes.JSONSlice[string] `gorm:"column:article_tags" json:"article_tags"`
	ArticleFeaturedImage string                      `gorm:"column:article_featured_image;type:text" json:"article_featured_image"`
	ArticleAuthor        string                      `gorm:"column:article_author;type:varchar(150)" json:"article_author"`
	ArticleIsPublished   bool                        `gorm:"column:article_is_published;not null;index" json:"article_is_published"`
	ArticlePublishedAt   *time.Time                  `gorm:"column:article_published_at" json:"article_published_at,omitempty"`
	ArticleViewCount     int64                       `gorm:"column:article_view_count;not null;default:0" json:"article_view_count"`
	ArticleCreatedAt     time.Time                   `gorm:"column:article_created_at;autoCreateTime" json:"article_created_at"`
	ArticleUpdatedAt     time.Time                   `gorm:"column:article_updated_at;autoUpdateTime" json:"article_updated_at"`
	ArticleDeletedAt     gorm.DeletedAt              `gorm:"column:article_deleted_at;index" json:"-"`
}

func (ArticleModel) TableName() string {
	return "articles"
}

func (m *ArticleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ArticleID == uuid.Nil {
		m.ArticleID = uuid.New()
	}
	if m.ArticleCategory == "" {
		m.ArticleCategory = DefaultCategory
	}
	return nil
}
