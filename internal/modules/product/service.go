package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"berrystore/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	productID := strings.TrimSpace(req.ProductID)

	exists, err := s.repo.ExistsByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check product_id: %w", err)
	}
	if exists {
		return nil, ErrDuplicateProductID
	}

	p := &domain.Product{
		ID:             uuid.NewString(),
		ProductID:      productID,
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Description:    req.Description,
		Tags:           req.Tags,
		InventoryCount: req.InventoryCount,
		Brand:          req.Brand,
		Material:       req.Material,
		AvailableSizes: req.AvailableSizes,
		Color:          req.Color,
		Settings:       req.Settings,
		WeightLb:       req.WeightLb,
		Images:         req.Images,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies merge semantics: only the fields present in the request
// replace the stored values.
func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.InventoryCount != nil {
		p.InventoryCount = *req.InventoryCount
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Material != nil {
		p.Material = *req.Material
	}
	if req.AvailableSizes != nil {
		p.AvailableSizes = *req.AvailableSizes
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.Settings != nil {
		p.Settings = *req.Settings
	}
	if req.WeightLb != nil {
		p.WeightLb = *req.WeightLb
	}
	if req.Images != nil {
		p.Images = *req.Images
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
