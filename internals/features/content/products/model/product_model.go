package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductModel struct {
	ProductID          uuid.UUID                   `gorm:"column:product_id;type:uuid;primaryKey" json:"product_id"`
	ProductName        string                      `gorm:"column:product_name;type:varchar(200);not null" json:"product_name"`
	ProductDescription string                      `gorm:"column:product_description;type:text" json:"product_description"`
	ProductPrice       int64                       `gorm:"column:product_price;not null" json:"product_price"`
	ProductCategory    string                      `gorm:"column:product_category;type:varchar(100);not null;index" json:"product_category"`
	ProductStock       int                         `gorm:"column:product_stock;not null;default:0" json:"product_stock"`
	ProductFeatures    datatypes.JSONSlice[string] `gorm:"column:product_features" json:"product_features"`
	ProductImages      datatypes.JSONSlice[string] `gorm:"column:product_images" json:"product_images"`
	ProductIsActive    bool                        `gorm:"column:product_is_active;not null;index" json:"product_is_active"`
	ProductCreatedAt   time.Time                   `gorm:"column:product_created_at;autoCreateTime" json:"product_created_at"`
	ProductUpdatedAt   time.Time                   `gorm:"column:product_updated_at;autoUpdateTime" json:"product_updated_at"`
	ProductDeletedAt   gorm.DeletedAt              `gorm:"column:product_deleted_at;index" json:"-"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProductID == uuid.Nil {
		m.ProductID = uuid.New()
	}
	return nil
}
