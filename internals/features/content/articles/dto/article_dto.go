package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"newmeclass_backend/internals/features/content/articles/model"
)

type CreateArticleRequest struct {
	ArticleTitle         string   `json:"article_title" validate:"required,min=3,max=255"`
	ArticleSlug          string   `json:"article_slug" validate:"omitempty,max=160"`
	ArticleExcerpt       string   `json:"article_excerpt"`
	ArticleContent       string   `json:"article_content" validate:"required"`
	ArticleCategory      string   `json:"article_category" validate:"omitempty,max=50"`
	ArticleTags          []string `json:"article_tags" validate:"omitempty,dive,max=50"`
	ArticleFeaturedImage string   `json:"article_featured_image"`
	ArticleAuthor        string   `json:"article_author" validate:"omitempty,max=150"`
	ArticleIsPublished   *bool    `json:"article_is_published"`
}

func (r CreateArticleRequest) ToModel() model.ArticleModel {
	m := model.ArticleModel{
		ArticleTitle:         strings.TrimSpace(r.ArticleTitle),
		ArticleExcerpt:       r.ArticleExcerpt,
		ArticleContent:       r.ArticleContent,
		ArticleCategory:      strings.ToLower(strings.TrimSpace(r.ArticleCategory)),
		ArticleTags:          datatypes.JSONSlice[string](cleanTags(r.ArticleTags)),
		ArticleFeaturedImage: r.ArticleFeaturedImage,
		ArticleAuthor:        strings.TrimSpace(r.ArticleAuthor),
		ArticleIsPublished:   r.ArticleIsPublished == nil || *r.ArticleIsPublished,
	}
	if m.ArticleAuthor == "" {
		m.ArticleAuthor = "Admin"
	}
	if m.ArticleIsPublished {
		now := time.Now()
		m.ArticlePublishedAt = &now
	}
	return m
}

// UpdateArticleRequest: partial update.
type UpdateArticleRequest struct {
	ArticleTitle         *string   `json:"article_title" validate:"omitempty,min=3,max=255"`
	ArticleSlug          *string   `json:"article_slug" validate:"omitempty,max=160"`
	ArticleExcerpt       *string   `json:"article_excerpt"`
	ArticleContent       *string   `json:"article_content"`
	ArticleCategory      *string   `json:"article_category" validate:"omitempty,max=50"`
	ArticleTags          *[]string `json:"article_tags"`
	ArticleFeaturedImage *string   `json:"article_featured_image"`
	ArticleAuthor        *string   `json:"article_author" validate:"omitempty,max=150"`
	ArticleIsPublished   *bool     `json:"article_is_published"`
}

// Apply mengubah m; slug baru ditangani controller (perlu cek unik).
func (r UpdateArticleRequest) Apply(m *model.ArticleModel) {
	if r.ArticleTitle != nil {
		m.ArticleTitle = strings.TrimSpace(*r.ArticleTitle)
	}
	if r.ArticleExcerpt != nil {
		m.ArticleExcerpt = *r.ArticleExcerpt
	}
	if r.ArticleContent != nil && strings.TrimSpace(*r.ArticleContent) != "" {
		m.ArticleContent = *r.ArticleContent
	}
	if r.ArticleCategory != nil && strings.TrimSpace(*r.ArticleCategory) != "" {
		m.ArticleCategory = strings.ToLower(strings.TrimSpace(*r.ArticleCategory))
	}
	if r.ArticleTags != nil {
		m.ArticleTags = datatypes.JSONSlice[string](cleanTags(*r.ArticleTags))
	}
	if r.ArticleFeaturedImage != nil {
		m.ArticleFeaturedImage = *r.ArticleFeaturedImage
	}
	if r.ArticleAuthor != nil && strings.TrimSpace(*r.ArticleAuthor) != "" {
		m.ArticleAuthor = strings.TrimSpace(*r.ArticleAuthor)
	}
	if r.ArticleIsPublished != nil {
		// tanggal terbit hanya diisi saat pertama kali publish
		if *r.ArticleIsPublished && m.ArticlePublishedAt == nil {
			now := time.Now()
			m.ArticlePublishedAt = &now
		}
		m.ArticleIsPublished = *r.ArticleIsPublished
	}
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

type ArticleStats struct {
	Total      int64 `json:"total"`
	Published  int64 `json:"published"`
	Drafts     int64 `json:"drafts"`
	TotalViews int64 `json:"total_views"`
}
