package audit

import (
	"context"
	"time"
)

// Table: audit_logs. Append-only; writers treat failures as non-fatal.
type Entry struct {
	ID         string    `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	AdminID    string    `gorm:"column:admin_id;type:char(32);not null;index" json:"admin_id"`
	Action     string    `gorm:"column:action;size:64;not null" json:"action"`
	TargetType string    `gorm:"column:target_type;size:64;not null" json:"target_type"`
	TargetID   string    `gorm:"column:target_id;size:64;not null" json:"target_id"`
	Metadata   string    `gorm:"column:metadata;type:text" json:"metadata"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

type Repository interface {
	Create(ctx context.Context, e *Entry) error
}
