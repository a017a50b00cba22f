package service

import (
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/features/content/settings/model"
)

func Get(db *gorm.DB) (model.SiteSettingsModel, error) {
	var s model.SiteSettingsModel
	def := model.DefaultSiteSettings(configs.DefaultPrice)
	err := db.Where("id = ?", 1).Attrs(def).FirstOrCreate(&s).Error
	return s, err
}

func Save(db *gorm.DB, updates map[string]any) (model.SiteSettingsModel, error) {
	if _, err := Get(db); err != nil {
		return model.SiteSettingsModel{}, err
	}
	if len(updates) > 0 {
		if err := db.Model(&model.SiteSettingsModel{}).Where("id = ?", 1).Updates(updates).Error; err != nil {
			return model.SiteSettingsModel{}, err
		}
	}
	return Get(db)
}

// TestPrice: harga tes premium, fallback ke TEST_PRICE kalau belum diset.
func TestPrice(db *gorm.DB) int64 {
	s, err := Get(db)
	if err != nil || s.TestPrice <= 0 {
		return configs.DefaultPrice
	}
	return s.TestPrice
}
