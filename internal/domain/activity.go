package domain

import "time"

// Activity is an append-only event log row. UserID is optional so
// anonymous page visits can still be recorded.
type Activity struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;index" json:"user_id,omitempty"`
	EventType string         `gorm:"column:event_type;index" json:"event_type" validate:"required"`
	Details   map[string]any `gorm:"column:details;serializer:json" json:"details,omitempty"`
	Timestamp time.Time      `gorm:"column:timestamp" json:"timestamp"`
}

func (Activity) TableName() string { return "activities" }
