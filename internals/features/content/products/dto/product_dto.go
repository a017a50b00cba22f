package dto

import (
	"strings"

	"gorm.io/datatypes"

	"newmeclass_backend/internals/features/content/products/model"
)

type CreateProductRequest struct {
	ProductName        string   `json:"product_name" validate:"required,min=1,max=200"`
	ProductDescription string   `json:"product_description" validate:"required"`
	ProductPrice       int64    `json:"product_price" validate:"required,gt=0"`
	ProductCategory    string   `json:"product_category" validate:"required,max=100"`
	ProductStock       int      `json:"product_stock" validate:"gte=0"`
	ProductFeatures    []string `json:"product_features"`
	ProductImages      []string `json:"product_images" validate:"omitempty,dive,url"`
	ProductIsActive    *bool    `json:"product_is_active"`
}

func (r CreateProductRequest) ToModel() model.ProductModel {
	return model.ProductModel{
		ProductName:        strings.TrimSpace(r.ProductName),
		ProductDescription: r.ProductDescription,
		ProductPrice:       r.ProductPrice,
		ProductCategory:    strings.TrimSpace(r.ProductCategory),
		ProductStock:       r.ProductStock,
		ProductFeatures:    datatypes.JSONSlice[string](nonEmpty(r.ProductFeatures)),
		ProductImages:      datatypes.JSONSlice[string](nonEmpty(r.ProductImages)),
		ProductIsActive:    r.ProductIsActive == nil || *r.ProductIsActive,
	}
}

type UpdateProductRequest struct {
	ProductName        *string   `json:"product_name" validate:"omitempty,min=1,max=200"`
	ProductDescription *string   `json:"product_description"`
	ProductPrice       *int64    `json:"product_price" validate:"omitempty,gt=0"`
	ProductCategory    *string   `json:"product_category" validate:"omitempty,max=100"`
	ProductStock       *int      `json:"product_stock" validate:"omitempty,gte=0"`
	ProductFeatures    *[]string `json:"product_features"`
	ProductImages      *[]string `json:"product_images"`
	ProductIsActive    *bool     `json:"product_is_active"`
}

func (r UpdateProductRequest) Apply(m *model.ProductModel) {
	if r.ProductName != nil && strings.TrimSpace(*r.ProductName) != "" {
		m.ProductName = strings.TrimSpace(*r.ProductName)
	}
	if r.ProductDescription != nil {
		m.ProductDescription = *r.ProductDescription
	}
	if r.ProductPrice != nil {
		m.ProductPrice = *r.ProductPrice
	}
	if r.ProductCategory != nil && strings.TrimSpace(*r.ProductCategory) != "" {
		m.ProductCategory = strings.TrimSpace(*r.ProductCategory)
	}
	if r.ProductStock != nil {
		m.ProductStock = *r.ProductStock
	}
	if r.ProductFeatures != nil {
		m.ProductFeatures = datatypes.JSONSlice[string](nonEmpty(*r.ProductFeatures))
	}
	if r.ProductImages != nil {
		m.ProductImages = datatypes.JSONSlice[string](nonEmpty(*r.ProductImages))
	}
	if r.ProductIsActive != nil {
		m.ProductIsActive = *r.ProductIsActive
	}
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type ProductStats struct {
	Total          int64 `json:"total"`
	Active         int64 `json:"active"`
	OutOfStock     int64 `json:"out_of_stock"`
	InventoryValue int64 `json:"inventory_value"`
}
