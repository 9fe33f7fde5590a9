package domain

import "time"

// ImageDescriptor points at a transcoded product image served from the
// upload root. Descriptors are immutable once returned to the caller.
type ImageDescriptor struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// Product is the catalog entity. ProductID is the external identifier
// (e.g. "SPW001") and is unique across all products; ID is the generated
// storage key.
type Product struct {
	ID             string            `gorm:"column:id;primaryKey" json:"id"`
	ProductID      string            `gorm:"column:product_id;uniqueIndex" json:"product_id" validate:"required"`
	Name           string            `gorm:"column:name" json:"name" validate:"required"`
	Category       string            `gorm:"column:category" json:"category"`
	Price          float64           `gorm:"column:price" json:"price" validate:"gte=0"`
	Description    string            `gorm:"column:description" json:"description"`
	Tags           []string          `gorm:"column:tags;serializer:json" json:"tags"`
	InventoryCount int               `gorm:"column:inventory_count" json:"inventory_count" validate:"gte=0"`
	Brand          string            `gorm:"column:brand" json:"brand"`
	Material       string            `gorm:"column:material" json:"material,omitempty"`
	AvailableSizes []string          `gorm:"column:available_sizes;serializer:json" json:"available_sizes,omitempty"`
	Color          string            `gorm:"column:color" json:"color,omitempty"`
	Settings       []string          `gorm:"column:settings;serializer:json" json:"settings,omitempty"`
	WeightLb       float64           `gorm:"column:weight_lb" json:"weight_lb,omitempty"`
	Images         []ImageDescriptor `gorm:"column:images;serializer:json" json:"images"`
	CreatedAt      time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
