package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeSlider = "slider"
	TypePopup  = "popup"
)

type BannerModel struct {
	BannerID          uuid.UUID      `gorm:"column:banner_id;type:uuid;primaryKey" json:"banner_id"`
	BannerTitle       string         `gorm:"column:banner_title;type:varchar(200);not null" json:"banner_title"`
	BannerDescription string         `gorm:"column:banner_description;type:text" json:"banner_description"`
	BannerImageURL    string         `gorm:"column:banner_image_url;type:text;not null" json:"banner_image_url"`
	BannerLink        string         `gorm:"column:banner_link;type:text" json:"banner_link"`
	BannerType        string         `gorm:"column:banner_type;type:varchar(10);not null;index" json:"banner_type"`
	BannerOrder       int            `gorm:"column:banner_order;not null;default:0" json:"banner_order"`
	BannerIsActive    bool           `gorm:"column:banner_is_active;not null;index" json:"banner_is_active"`
	BannerCreatedBy   *uuid.UUID     `gorm:"column:banner_created_by;type:uuid" json:"banner_created_by,omitempty"`
	BannerCreatedAt   time.Time      `gorm:"column:banner_created_at;autoCreateTime" json:"banner_created_at"`
	BannerUpdatedAt   time.Time      `gorm:"column:banner_updated_at;autoUpdateTime" json:"banner_updated_at"`
	BannerDeletedAt   gorm.DeletedAt `gorm:"column:banner_deleted_at;index" json:"-"`
}

func (BannerModel) TableName() string {
	return "banners"
}

func (m *BannerModel) BeforeCreate(tx *gorm.DB) error {
	if m.BannerID == uuid.Nil {
		m.BannerID = uuid.New()
	}
	if m.BannerType == "" {
		m.BannerType = TypeSlider
	}
	return nil
}
