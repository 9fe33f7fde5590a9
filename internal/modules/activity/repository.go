package activity

import (
	"context"

	"gorm.io/gorm"

	"berrystore/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, eventType string, limit int) ([]domain.Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *domain.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) List(ctx context.Context, eventType string, limit int) ([]domain.Activity, error) {
	q := r.db.WithContext(ctx).Order("timestamp DESC").Limit(limit)
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}
	var activities []domain.Activity
	err := q.Find(&activities).Error
	return activities, err
}
