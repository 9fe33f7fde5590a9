package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"berrystore/internal/domain"
)

const defaultListLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log appends one event. UserID may be empty for anonymous traffic.
func (s *Service) Log(ctx context.Context, userID, eventType string, details map[string]any) (*domain.Activity, error) {
	a := &domain.Activity{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("log activity: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, eventType string, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, eventType, limit)
}
