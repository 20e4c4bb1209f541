package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeApprovalRequest = "approval_request"
	TypeStatusUpdate    = "status_update"
	TypeInfo            = "info"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	Title         string     `gorm:"size:255;not null"`
	Message       string     `gorm:"type:text"`
	Type          string     `gorm:"size:30;not null;default:'info'"`
	ReferenceType string     `gorm:"size:30"`
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`
	IsRead        bool       `gorm:"not null;default:false;index:idx_notifications_recipient"`
	ReadAt        *time.Time
	CreatedAt     time.Time
}
