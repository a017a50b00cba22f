package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RunningInfoModel: teks berjalan di header situs, tampil sesuai jendela waktu.
type RunningInfoModel struct {
	RunningInfoID        uuid.UUID  `gorm:"column:running_info_id;type:uuid;primaryKey" json:"running_info_id"`
	RunningInfoMessage   string     `gorm:"column:running_info_message;type:text;not null" json:"running_info_message"`
	RunningInfoIsActive  bool       `gorm:"column:running_info_is_active;not null;index" json:"running_info_is_active"`
	RunningInfoPriority  int        `gorm:"column:running_info_priority;not null;default:0" json:"running_info_priority"`
	RunningInfoStartDate *time.Time `gorm:"column:running_info_start_date" json:"running_info_start_date,omitempty"`
	RunningInfoEndDate   *time.Time `gorm:"column:running_info_end_date" json:"running_info_end_date,omitempty"`
	RunningInfoLinkURL   string     `gorm:"column:running_info_link_url;type:text" json:"running_info_link_url"`
	RunningInfoLinkText  string     `gorm:"column:running_info_link_text;type:varchar(100)" json:"running_info_link_text"`
	RunningInfoBgColor   string     `gorm:"column:running_info_bg_color;type:varchar(7);not null" json:"running_info_bg_color"`
	RunningInfoTextColor string     `gorm:"column:running_info_text_color;type:varchar(7);not null" json:"running_info_text_color"`
	RunningInfoCreatedAt time.Time  `gorm:"column:running_info_created_at;autoCreateTime" json:"running_info_created_at"`
	RunningInfoUpdatedAt time.Time  `gorm:"column:running_info_updated_at;autoUpdateTime" json:"running_info_updated_at"`
}

func (RunningInfoModel) TableName() string {
	return "running_infos"
}

func (m *RunningInfoModel) BeforeCreate(tx *gorm.DB) error {
	if m.RunningInfoID == uuid.Nil {
		m.RunningInfoID = uuid.New()
	}
	if m.RunningInfoBgColor == "" {
		m.RunningInfoBgColor = "#FFD700"
	}
	if m.RunningInfoTextColor == "" {
		m.RunningInfoTextColor = "#1a1a1a"
	}
	return nil
}

// VisibleAt: aktif dan now berada di [start, end] (batas kosong = terbuka).
func (m RunningInfoModel) VisibleAt(now time.Time) bool {
	if !m.RunningInfoIsActive {
		return false
	}
	if m.RunningInfoStartDate != nil && now.Before(*m.RunningInfoStartDate) {
		return false
	}
	if m.RunningInfoEndDate != nil && now.After(*m.RunningInfoEndDate) {
		return false
	}
	return true
}
