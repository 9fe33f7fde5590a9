package product

import "berrystore/internal/domain"

type CreateProductRequest struct {
	ProductID      string                   `json:"product_id" validate:"required"`
	Name           string                   `json:"name" validate:"required"`
	Category       string                   `json:"category"`
	Price          float64                  `json:"price" validate:"gte=0"`
	Description    string                   `json:"description"`
	Tags           []string                 `json:"tags"`
	InventoryCount int                      `json:"inventory_count" validate:"gte=0"`
	Brand          string                   `json:"brand"`
	Material       string                   `json:"material"`
	AvailableSizes []string                 `json:"available_sizes"`
	Color          string                   `json:"color"`
	Settings       []string                 `json:"settings"`
	WeightLb       float64                  `json:"weight_lb"`
	Images         []domain.ImageDescriptor `json:"images"`
}

// UpdateProductRequest uses pointers so omitted fields are left alone
// (merge semantics). product_id itself cannot be changed.
type UpdateProductRequest struct {
	Name           *string                   `json:"name,omitempty"`
	Category       *string                   `json:"category,omitempty"`
	Price          *float64                  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description    *string                   `json:"description,omitempty"`
	Tags           *[]string                 `json:"tags,omitempty"`
	InventoryCount *int                      `json:"inventory_count,omitempty" validate:"omitempty,gte=0"`
	Brand          *string                   `json:"brand,omitempty"`
	Material       *string                   `json:"material,omitempty"`
	AvailableSizes *[]string                 `json:"available_sizes,omitempty"`
	Color          *string                   `json:"color,omitempty"`
	Settings       *[]string                 `json:"settings,omitempty"`
	WeightLb       *float64                  `json:"weight_lb,omitempty"`
	Images         *[]domain.ImageDescriptor `json:"images,omitempty"`
}
