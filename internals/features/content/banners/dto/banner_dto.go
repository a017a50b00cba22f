package dto

import (
	"strings"

	"newmeclass_backend/internals/features/content/banners/model"
)

// Dikirim sebagai multipart/form-data bersama file "image".
type CreateBannerRequest struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	Link        string `form:"link" validate:"omitempty,max=500"`
	Type        string `form:"type" validate:"omitempty,oneof=slider popup"`
	Order       int    `form:"order" validate:"gte=0"`
	IsActive    *bool  `form:"is_active"`
}

func (r CreateBannerRequest) ToModel(imageURL string) model.BannerModel {
	return model.BannerModel{
		BannerTitle:       strings.TrimSpace(r.Title),
		BannerDescription: r.Description,
		BannerImageURL:    imageURL,
		BannerLink:        strings.TrimSpace(r.Link),
		BannerType:        r.Type,
		BannerOrder:       r.Order,
		BannerIsActive:    r.IsActive == nil || *r.IsActive,
	}
}

type UpdateBannerRequest struct {
	Title       *string `form:"title" validate:"omitempty,max=200"`
	Description *string `form:"description"`
	Link        *string `form:"link" validate:"omitempty,max=500"`
	Type        *string `form:"type" validate:"omitempty,oneof=slider popup"`
	Order       *int    `form:"order" validate:"omitempty,gte=0"`
	IsActive    *bool   `form:"is_active"`
}

func (r UpdateBannerRequest) Apply(m *model.BannerModel) {
	if r.Title != nil && strings.TrimSpace(*r.Title) != "" {
		m.BannerTitle = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.BannerDescription = *r.Description
	}
	if r.Link != nil {
		m.BannerLink = strings.TrimSpace(*r.Link)
	}
	if r.Type != nil && *r.Type != "" {
		m.BannerType = *r.Type
	}
	if r.Order != nil {
		m.BannerOrder = *r.Order
	}
	if r.IsActive != nil {
		m.BannerIsActive = *r.IsActive
	}
}
